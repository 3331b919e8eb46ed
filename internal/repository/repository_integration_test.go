package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/rs/zerolog"
)

// setupRepos connects to TEST_DATABASE_URL, migrates and truncates every
// table. Tests are skipped when the variable is unset.
func setupRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	repos, _ := setupDB(t)
	return repos
}

// setupDB is setupRepos that also hands back the raw connection
func setupDB(t *testing.T) (*repository.Repositories, *sql.DB) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db := database.Wrap(conn, zerolog.Nop())
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	_, err = conn.Exec(`TRUNCATE users, articles, daily_activities, friend_links,
		friend_link_requests, messages, media RESTART IDENTITY`)
	if err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}

	return repository.New(db), conn
}

func TestIntegration_ArticleLifecycle(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	article := &models.Article{
		Title:      "Hello",
		Tags:       models.TagList{"go", "sql"},
		ContentURL: "/media/markdown/abc",
		Status:     models.ArticleDraft,
	}
	if err := repos.Article.Create(ctx, article); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repos.Article.TransitionStatus(ctx, article.ID, models.ArticleDraft, models.ArticlePublished)
	if err != nil || got == nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", got.Tags)
	}

	// Second publish matches no draft row
	got, err = repos.Article.TransitionStatus(ctx, article.ID, models.ArticleDraft, models.ArticlePublished)
	if err != nil {
		t.Fatalf("TransitionStatus failed: %v", err)
	}
	if got != nil {
		t.Error("Expected no row for already published article")
	}

	items, total, err := repos.Article.List(ctx, models.ArticleFilter{Keyword: "hel"}, models.Page{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("Expected 1 match, got %d/%d", len(items), total)
	}
}

func TestIntegration_BatchSavepoints(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	draft := &models.Article{Title: "d", ContentURL: "x", Status: models.ArticleDraft}
	published := &models.Article{Title: "p", ContentURL: "x", Status: models.ArticlePublished}
	repos.Article.Create(ctx, draft)
	repos.Article.Create(ctx, published)

	err := repos.Article.RunBatch(ctx, func(tx repository.ArticleTx) error {
		for _, id := range []int64{draft.ID, published.ID, 9999} {
			status, found, err := tx.Status(ctx, id)
			if err != nil {
				return err
			}
			if !found || status != models.ArticleDraft {
				continue
			}
			if err := tx.SetStatus(ctx, id, models.ArticlePublished); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	got, _ := repos.Article.GetByID(ctx, draft.ID)
	if got.Status != models.ArticlePublished {
		t.Errorf("Expected draft to be published, got %s", got.Status)
	}
}

func TestIntegration_BatchRowFailureKeepsBatch(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	a := &models.Article{Title: "a", ContentURL: "x", Status: models.ArticleDraft}
	b := &models.Article{Title: "b", ContentURL: "x", Status: models.ArticleDraft}
	if err := repos.Article.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repos.Article.Create(ctx, b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var rowErr error
	err := repos.Article.RunBatch(ctx, func(tx repository.ArticleTx) error {
		// Violates the status CHECK constraint
		rowErr = tx.SetStatus(ctx, a.ID, "bogus")
		return tx.SetStatus(ctx, b.ID, models.ArticlePublished)
	})
	if err != nil {
		t.Fatalf("RunBatch should commit after a failed row, got %v", err)
	}
	if rowErr == nil {
		t.Fatal("Expected the invalid status to be rejected")
	}

	got, err := repos.Article.GetByID(ctx, a.ID)
	if err != nil || got.Status != models.ArticleDraft {
		t.Errorf("Failed row should be left as draft, got %+v (%v)", got, err)
	}
	got, err = repos.Article.GetByID(ctx, b.ID)
	if err != nil || got.Status != models.ArticlePublished {
		t.Errorf("Row after the failure should be published, got %+v (%v)", got, err)
	}
}

func TestIntegration_ApproveRequestRollsBack(t *testing.T) {
	repos, conn := setupDB(t)
	ctx := context.Background()

	if _, err := conn.Exec(`ALTER TABLE friend_links DROP CONSTRAINT IF EXISTS friend_links_no_boom`); err != nil {
		t.Fatalf("Failed to drop constraint: %v", err)
	}
	if _, err := conn.Exec(`ALTER TABLE friend_links ADD CONSTRAINT friend_links_no_boom CHECK (name <> 'boom')`); err != nil {
		t.Fatalf("Failed to add constraint: %v", err)
	}
	t.Cleanup(func() {
		conn.Exec(`ALTER TABLE friend_links DROP CONSTRAINT IF EXISTS friend_links_no_boom`)
	})

	req := &models.FriendLinkRequest{Name: "boom", URL: "https://boom.example.com"}
	if err := repos.FriendLink.CreateRequest(ctx, req); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	if _, err := repos.FriendLink.ApproveRequest(ctx, req.ID); err == nil {
		t.Fatal("Expected the link insert to fail")
	}

	requests, err := repos.FriendLink.ListRequests(ctx)
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if len(requests) != 1 || requests[0].Status != models.RequestPending {
		t.Errorf("Request should stay pending, got %+v", requests)
	}

	var links int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM friend_links`).Scan(&links); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if links != 0 {
		t.Errorf("Expected no friend links, got %d", links)
	}
}

func TestIntegration_FriendLinkStatusCheck(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	if err := repos.FriendLink.Create(ctx, &models.FriendLink{Name: "x", URL: "https://x.io", Status: "hidden"}); err == nil {
		t.Error("Expected the status CHECK constraint to reject an unknown status")
	}
}

func TestIntegration_ApproveRequest(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	req := &models.FriendLinkRequest{Name: "Site", URL: "https://example.com"}
	if err := repos.FriendLink.CreateRequest(ctx, req); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	link, err := repos.FriendLink.ApproveRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("ApproveRequest failed: %v", err)
	}
	if link.URL != req.URL || link.Status != models.LinkStatusApproved {
		t.Errorf("Unexpected link %+v", link)
	}

	if _, err := repos.FriendLink.ApproveRequest(ctx, req.ID); !errors.Is(err, models.ErrPrecondition) {
		t.Errorf("Expected ErrPrecondition on second approve, got %v", err)
	}
	if err := repos.FriendLink.RejectRequest(ctx, 424242); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestIntegration_ActivityUpsert(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	first, err := repos.Activity.Upsert(ctx, models.ActivityInput{Date: "2024-05-01", Mood: "happy"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	second, err := repos.Activity.Upsert(ctx, models.ActivityInput{Date: "2024-05-01", Mood: "tired"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if first.ID != second.ID || second.Mood != "tired" || second.Date != "2024-05-01" {
		t.Errorf("Expected in-place update, got %+v", second)
	}

	n, _ := repos.Activity.Count(ctx)
	if n != 1 {
		t.Errorf("Expected 1 day, got %d", n)
	}
}

func TestIntegration_UserDuplicateEmail(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	u := &models.User{Email: "a@example.com", Username: "a", Password: "hash"}
	if err := repos.User.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	dup := &models.User{Email: "a@example.com", Username: "b", Password: "hash"}
	if err := repos.User.Create(ctx, dup); !errors.Is(err, models.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}

	repos.User.SetToken(ctx, u.ID, "tok")
	got, _ := repos.User.GetByToken(ctx, "tok")
	if got == nil || got.ID != u.ID {
		t.Fatal("Expected to resolve token")
	}
	repos.User.SetToken(ctx, u.ID, "")
	if got, _ := repos.User.GetByToken(ctx, "tok"); got != nil {
		t.Error("Expected cleared token to resolve to nobody")
	}
}
