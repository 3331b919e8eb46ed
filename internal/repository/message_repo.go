package repository

import (
	"context"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

type messageRepo struct {
	db *database.DB
}

// NewMessageRepo creates a new guestbook repository
func NewMessageRepo(db *database.DB) MessageRepository {
	return &messageRepo{db: db}
}

// Create inserts a guestbook message
func (r *messageRepo) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (author, avatar, content, is_private, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		msg.Author, msg.Avatar, msg.Content, msg.IsPrivate, msg.Email,
	).Scan(&msg.ID, &msg.CreatedAt)
}

// List returns one page of messages, newest first. Private messages are
// only included when includePrivate is set.
func (r *messageRepo) List(ctx context.Context, includePrivate bool, page models.Page) ([]*models.Message, int, error) {
	var cond conditions
	if !includePrivate {
		cond.add("is_private = ?", false)
	}
	where := cond.where()

	total, err := count(ctx, r.db.DB, "SELECT COUNT(*) FROM messages"+where, cond.args...)
	if err != nil {
		return nil, 0, err
	}

	limit := cond.next()
	cond.args = append(cond.args, page.PageSize)
	offset := cond.next()
	cond.args = append(cond.args, page.Offset())

	query := `SELECT id, author, avatar, content, is_private, email, created_at FROM messages` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + limit + ` OFFSET ` + offset

	rows, err := r.db.QueryContext(ctx, query, cond.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages := make([]*models.Message, 0, page.PageSize)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Author, &m.Avatar, &m.Content, &m.IsPrivate, &m.Email, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		messages = append(messages, &m)
	}
	return messages, total, rows.Err()
}

// Delete removes a message
func (r *messageRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return rowsAffected(r.db.ExecContext(ctx, "DELETE FROM messages WHERE id = $1", id))
}

// Count returns the total number of messages
func (r *messageRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db.DB, "SELECT COUNT(*) FROM messages")
}
