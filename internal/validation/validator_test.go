package validation

import (
	"errors"
	"testing"

	"github.com/personal-blog-api/internal/models"
)

func strPtr(s string) *string { return &s }

func fields(err error) []string {
	var errs Errors
	if !errors.As(err, &errs) {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestValidateArticleInput(t *testing.T) {
	tests := []struct {
		name       string
		input      models.ArticleInput
		wantFields []string
	}{
		{
			name:  "valid draft",
			input: models.ArticleInput{Title: "Hello", ContentURL: "/media/markdown/1"},
		},
		{
			name:  "valid published",
			input: models.ArticleInput{Title: "Hello", ContentURL: "/x", Status: models.ArticlePublished},
		},
		{
			name:       "missing title",
			input:      models.ArticleInput{ContentURL: "/x"},
			wantFields: []string{"title"},
		},
		{
			name:       "missing both required fields",
			input:      models.ArticleInput{Title: "  "},
			wantFields: []string{"title", "content_url"},
		},
		{
			name:       "unknown status",
			input:      models.ArticleInput{Title: "t", ContentURL: "/x", Status: "archived"},
			wantFields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticleInput(&tt.input)
			got := fields(err)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("Expected fields %v, got %v (%v)", tt.wantFields, got, err)
			}
			for i := range got {
				if got[i] != tt.wantFields[i] {
					t.Errorf("Expected field %s, got %s", tt.wantFields[i], got[i])
				}
			}
		})
	}
}

func TestValidateArticlePatch(t *testing.T) {
	if err := ValidateArticlePatch(&models.ArticlePatch{}); err == nil {
		t.Error("Empty patch should be rejected")
	}
	if err := ValidateArticlePatch(&models.ArticlePatch{Title: strPtr("")}); err == nil {
		t.Error("Blank title should be rejected")
	}
	if err := ValidateArticlePatch(&models.ArticlePatch{Category: strPtr("go")}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestValidateRegister(t *testing.T) {
	valid := models.RegisterRequest{Email: "me@example.com", Code: "123456", Username: "me", Password: "secret1"}
	if err := ValidateRegister(&valid); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bad := models.RegisterRequest{Email: "nope", Password: "abc"}
	got := fields(ValidateRegister(&bad))
	want := []string{"email", "code", "username", "password"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
}

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name    string
		ids     []int64
		wantErr bool
	}{
		{name: "valid", ids: []int64{1, 2, 3}},
		{name: "empty", ids: nil, wantErr: true},
		{name: "zero id", ids: []int64{1, 0}, wantErr: true},
		{name: "negative id", ids: []int64{-4}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatch(&models.BatchRequest{ArticleIDs: tt.ids})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBatch error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateActivity(t *testing.T) {
	tests := []struct {
		name    string
		input   models.ActivityInput
		wantErr bool
	}{
		{name: "valid", input: models.ActivityInput{Date: "2024-02-29", Mood: "happy"}},
		{name: "missing mood", input: models.ActivityInput{Date: "2024-01-01"}, wantErr: true},
		{name: "bad date", input: models.ActivityInput{Date: "2023-02-29", Mood: "ok"}, wantErr: true},
		{name: "wrong layout", input: models.ActivityInput{Date: "01/02/2024", Mood: "ok"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateActivityInput(&tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateActivityInput error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := ValidateActivityRange("2024-02-01", "2024-01-01"); err == nil {
		t.Error("Inverted range should be rejected")
	}
	if err := ValidateActivityRange("", "2024-01-01"); err != nil {
		t.Errorf("Open start should be accepted: %v", err)
	}
}

func TestValidateFriendLinks(t *testing.T) {
	if err := ValidateFriendLinkInput(&models.FriendLinkInput{Name: "Blog", URL: "https://blog.example"}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateFriendLinkInput(&models.FriendLinkInput{Name: "Blog", URL: "javascript:alert(1)"}); err == nil {
		t.Error("Non-http URL should be rejected")
	}
	if err := ValidateFriendLinkRequest(&models.FriendLinkRequestInput{Name: "a", URL: "http://a.io", Email: "bad"}); err == nil {
		t.Error("Bad contact email should be rejected")
	}
	if err := ValidateFriendLinkPatch(&models.FriendLinkPatch{Name: strPtr("x")}); err == nil {
		t.Error("Patch without id should be rejected")
	}
}

func TestValidateFriendLinkStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"input without status", ValidateFriendLinkInput(&models.FriendLinkInput{Name: "Blog", URL: "https://b.io"}), false},
		{"input approved", ValidateFriendLinkInput(&models.FriendLinkInput{Name: "Blog", URL: "https://b.io", Status: "approved"}), false},
		{"input unknown status", ValidateFriendLinkInput(&models.FriendLinkInput{Name: "Blog", URL: "https://b.io", Status: "hidden"}), true},
		{"patch without status", ValidateFriendLinkPatch(&models.FriendLinkPatch{ID: 1, Name: strPtr("x")}), false},
		{"patch approved", ValidateFriendLinkPatch(&models.FriendLinkPatch{ID: 1, Status: strPtr("approved")}), false},
		{"patch unknown status", ValidateFriendLinkPatch(&models.FriendLinkPatch{ID: 1, Status: strPtr("bogus")}), true},
		{"patch empty status", ValidateFriendLinkPatch(&models.FriendLinkPatch{ID: 1, Status: strPtr("")}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", tt.err, tt.wantErr)
			}
		})
	}
}

func TestValidateMessageInput(t *testing.T) {
	if err := ValidateMessageInput(&models.MessageInput{}); err == nil {
		t.Error("Empty content should be rejected")
	}
	if err := ValidateMessageInput(&models.MessageInput{Content: "hi"}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, size string
		want       models.Page
	}{
		{"", "", models.Page{Page: 1, PageSize: 10}},
		{"3", "20", models.Page{Page: 3, PageSize: 20}},
		{"0", "0", models.Page{Page: 1, PageSize: 10}},
		{"-2", "-5", models.Page{Page: 1, PageSize: 10}},
		{"abc", "xyz", models.Page{Page: 1, PageSize: 10}},
		{"2", "500", models.Page{Page: 2, PageSize: 100}},
	}

	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.size); got != tt.want {
			t.Errorf("ClampPage(%q, %q) = %+v, want %+v", tt.page, tt.size, got, tt.want)
		}
	}
}

func TestClampActivityLimit(t *testing.T) {
	tests := map[string]int{
		"":     100,
		"0":    100,
		"30":   30,
		"1000": 366,
		"x":    100,
	}
	for raw, want := range tests {
		if got := ClampActivityLimit(raw); got != want {
			t.Errorf("ClampActivityLimit(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Errorf("Expected 42, got %d (%v)", id, err)
	}
	for _, raw := range []string{"", "0", "-1", "abc"} {
		if _, err := ParseID(raw); err == nil {
			t.Errorf("ParseID(%q) should fail", raw)
		}
	}
}

// BenchmarkValidation benchmarks the write validators hit by every upload
func BenchmarkValidation(b *testing.B) {
	article := &models.ArticleInput{
		Title:      "Hello",
		ContentURL: "/media/markdown/abc",
		Status:     models.ArticleDraft,
	}
	batch := &models.BatchRequest{ArticleIDs: []int64{1, 2, 3, 4, 5, 6, 7, 8}}
	link := &models.FriendLinkRequestInput{Name: "Friend", URL: "https://friend.example.com", Email: "f@example.com"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		ValidateArticleInput(article)
		ValidateBatch(batch)
		ValidateFriendLinkRequest(link)
	}
}
