package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

const articleColumns = `id, title, summary, cover_image_url, category, tags,
	likes_count, comments_count, views_count, created_at, content_url, status`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var tags string

	err := row.Scan(
		&article.ID, &article.Title, &article.Summary, &article.CoverImageURL, &article.Category, &tags,
		&article.LikesCount, &article.CommentsCount, &article.ViewsCount, &article.CreatedAt,
		&article.ContentURL, &article.Status,
	)
	if err != nil {
		return nil, err
	}

	article.Tags = models.ParseTags(tags)
	return &article, nil
}

// scanOne treats sql.ErrNoRows as a nil article
func scanOne(row *sql.Row) (*models.Article, error) {
	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return article, err
}

// Create inserts a new article and fills in its ID and creation time
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (title, summary, cover_image_url, category, tags,
			likes_count, comments_count, views_count, content_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		article.Title, article.Summary, article.CoverImageURL, article.Category, article.Tags.String(),
		article.LikesCount, article.CommentsCount, article.ViewsCount,
		article.ContentURL, article.Status,
	).Scan(&article.ID, &article.CreatedAt)
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

// List returns one page of articles matching the filter, newest first,
// together with the total number of matches
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter, page models.Page) ([]*models.Article, int, error) {
	var cond conditions
	if filter.Keyword != "" {
		cond.add("title ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Category != "" {
		cond.add("category = ?", filter.Category)
	}
	if filter.Status != "" {
		cond.add("status = ?", filter.Status)
	}
	where := cond.where()

	total, err := count(ctx, r.db.DB, "SELECT COUNT(*) FROM articles"+where, cond.args...)
	if err != nil {
		return nil, 0, err
	}

	limit := cond.next()
	cond.args = append(cond.args, page.PageSize)
	offset := cond.next()
	cond.args = append(cond.args, page.Offset())

	query := `SELECT ` + articleColumns + ` FROM articles` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + limit + ` OFFSET ` + offset

	rows, err := r.db.QueryContext(ctx, query, cond.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0, page.PageSize)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, article)
	}
	return articles, total, rows.Err()
}

// Update applies the non-nil fields of patch and returns the stored row,
// or nil when the article does not exist
func (r *articleRepo) Update(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, error) {
	var set assignments
	if patch.Title != nil {
		set.set("title", *patch.Title)
	}
	if patch.Summary != nil {
		set.set("summary", *patch.Summary)
	}
	if patch.CoverImageURL != nil {
		set.set("cover_image_url", *patch.CoverImageURL)
	}
	if patch.Category != nil {
		set.set("category", *patch.Category)
	}
	if patch.Tags != nil {
		set.set("tags", patch.Tags.String())
	}
	if patch.ContentURL != nil {
		set.set("content_url", *patch.ContentURL)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := set.statement("articles", id, articleColumns)
	return scanOne(r.db.QueryRowContext(ctx, query, args...))
}

// Delete removes an article regardless of status
func (r *articleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return rowsAffected(r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id))
}

// TransitionStatus moves an article from one status to another in a single
// conditional statement. It returns nil when no article with that ID is in
// the from status.
func (r *articleRepo) TransitionStatus(ctx context.Context, id int64, from, to models.ArticleStatus) (*models.Article, error) {
	query := `UPDATE articles SET status = $3 WHERE id = $1 AND status = $2 RETURNING ` + articleColumns
	return scanOne(r.db.QueryRowContext(ctx, query, id, from, to))
}

// IncrementViews bumps the view counter
func (r *articleRepo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE articles SET views_count = views_count + 1 WHERE id = $1", id)
	return err
}

// IncrementLikes bumps the like counter and returns the updated article
func (r *articleRepo) IncrementLikes(ctx context.Context, id int64) (*models.Article, error) {
	query := `UPDATE articles SET likes_count = likes_count + 1 WHERE id = $1 RETURNING ` + articleColumns
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db.DB, "SELECT COUNT(*) FROM articles")
}

// RunBatch runs fn inside one transaction that commits once fn returns nil
func (r *articleRepo) RunBatch(ctx context.Context, fn func(tx ArticleTx) error) error {
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		return fn(&articleTx{tx: tx})
	})
}

// articleTx isolates every row operation in a savepoint so that a failed
// statement leaves the surrounding transaction usable
type articleTx struct {
	tx *sql.Tx
}

func (t *articleTx) savepoint(ctx context.Context, fn func() error) error {
	if _, err := t.tx.ExecContext(ctx, "SAVEPOINT batch_row"); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if _, rbErr := t.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT batch_row"); rbErr != nil {
			return fmt.Errorf("%v (rollback to savepoint: %w)", err, rbErr)
		}
		return err
	}
	_, err := t.tx.ExecContext(ctx, "RELEASE SAVEPOINT batch_row")
	return err
}

// Status locks the row and returns its status; found is false when absent
func (t *articleTx) Status(ctx context.Context, id int64) (models.ArticleStatus, bool, error) {
	var status models.ArticleStatus
	found := true
	err := t.savepoint(ctx, func() error {
		err := t.tx.QueryRowContext(ctx, "SELECT status FROM articles WHERE id = $1 FOR UPDATE", id).Scan(&status)
		if err == sql.ErrNoRows {
			found = false
			return nil
		}
		return err
	})
	return status, found, err
}

func (t *articleTx) SetStatus(ctx context.Context, id int64, status models.ArticleStatus) error {
	return t.savepoint(ctx, func() error {
		_, err := t.tx.ExecContext(ctx, "UPDATE articles SET status = $2 WHERE id = $1", id, status)
		return err
	})
}

func (t *articleTx) Delete(ctx context.Context, id int64) error {
	return t.savepoint(ctx, func() error {
		_, err := t.tx.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
		return err
	})
}
