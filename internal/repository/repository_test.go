package repository

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lib/pq"
	"github.com/personal-blog-api/internal/models"
)

func TestConditions_Placeholders(t *testing.T) {
	var cond conditions
	if cond.where() != "" {
		t.Errorf("Expected empty WHERE, got %q", cond.where())
	}

	cond.add("title ILIKE ?", "%go%")
	cond.add("status = ?", models.ArticlePublished)

	if got := cond.where(); got != " WHERE title ILIKE $1 AND status = $2" {
		t.Errorf("Unexpected WHERE %q", got)
	}
	if got := cond.next(); got != "$3" {
		t.Errorf("Expected next placeholder $3, got %s", got)
	}
	if !reflect.DeepEqual(cond.args, []interface{}{"%go%", models.ArticlePublished}) {
		t.Errorf("Unexpected args %v", cond.args)
	}
}

func TestAssignments_Statement(t *testing.T) {
	var set assignments
	if !set.empty() {
		t.Fatal("New assignments should be empty")
	}

	set.set("title", "New")
	set.set("category", "tech")

	query, args := set.statement("articles", int64(7), "id")
	want := "UPDATE articles SET title = $1, category = $2 WHERE id = $3 RETURNING id"
	if query != want {
		t.Errorf("Expected %q, got %q", want, query)
	}
	if len(args) != 3 || args[2] != int64(7) {
		t.Errorf("Unexpected args %v", args)
	}
}

func TestTranslate(t *testing.T) {
	dup := &pq.Error{Code: uniqueViolation, Constraint: "users_email_key"}
	if err := translate(dup); !errors.Is(err, models.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}

	other := errors.New("connection reset")
	if err := translate(other); err != other {
		t.Errorf("Expected error to pass through, got %v", err)
	}

	if translate(nil) != nil {
		t.Error("nil should stay nil")
	}
}
