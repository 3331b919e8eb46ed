package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ArticleStatus is the two-state article lifecycle
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[ArticleStatus]bool{
	ArticleDraft:     true,
	ArticlePublished: true,
}

// TagSeparator joins tags in the articles.tags column
const TagSeparator = ","

// Article represents a blog article
type Article struct {
	ID            int64         `json:"id" db:"id"`
	Title         string        `json:"title" db:"title"`
	Summary       string        `json:"summary" db:"summary"`
	CoverImageURL string        `json:"cover_image_url" db:"cover_image_url"`
	Category      string        `json:"category" db:"category"`
	Tags          TagList       `json:"tags" db:"tags"` // Stored comma-joined
	LikesCount    int           `json:"likes_count" db:"likes_count"`
	CommentsCount int           `json:"comments_count" db:"comments_count"`
	ViewsCount    int           `json:"views_count" db:"views_count"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	ContentURL    string        `json:"content_url" db:"content_url"`
	Status        ArticleStatus `json:"status" db:"status"`
}

// ArticleInput is the create payload. Tags accept either a JSON list or a
// comma-joined string.
type ArticleInput struct {
	Title         string        `json:"title"`
	Summary       string        `json:"summary"`
	CoverImageURL string        `json:"cover_image_url"`
	Category      string        `json:"category"`
	Tags          TagList       `json:"tags"`
	ContentURL    string        `json:"content_url"`
	Status        ArticleStatus `json:"status"`
}

// ArticlePatch carries a partial update; nil fields are left untouched
type ArticlePatch struct {
	Title         *string  `json:"title"`
	Summary       *string  `json:"summary"`
	CoverImageURL *string  `json:"cover_image_url"`
	Category      *string  `json:"category"`
	Tags          *TagList `json:"tags"`
	ContentURL    *string  `json:"content_url"`
}

// IsEmpty reports whether the patch changes nothing
func (p ArticlePatch) IsEmpty() bool {
	return p.Title == nil && p.Summary == nil && p.CoverImageURL == nil &&
		p.Category == nil && p.Tags == nil && p.ContentURL == nil
}

// ArticleFilter composes optional list predicates
type ArticleFilter struct {
	Keyword  string
	Category string
	Status   ArticleStatus
}

// ArticlePage is the list response body
type ArticlePage struct {
	Items    []*Article `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// TagList is exposed as a list and stored as a delimited string
type TagList []string

// ParseTags splits a stored tag string. An empty string yields no tags.
func ParseTags(s string) TagList {
	if s == "" {
		return TagList{}
	}
	return TagList(strings.Split(s, TagSeparator))
}

// String joins the tags for storage
func (t TagList) String() string {
	return strings.Join(t.Normalize(), TagSeparator)
}

// Normalize drops empty tags
func (t TagList) Normalize() TagList {
	out := make(TagList, 0, len(t))
	for _, tag := range t {
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// UnmarshalJSON accepts ["a","b"], "a,b" or null
func (t *TagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = TagList{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = ParseTags(s).Normalize()
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a list or a comma-separated string: %w", err)
	}
	*t = TagList(list).Normalize()
	return nil
}

// MarshalJSON always emits a list, never null
func (t TagList) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}
