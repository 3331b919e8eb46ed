package repository

import (
	"context"
	"database/sql"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

const (
	friendLinkColumns = `id, name, description, url, logo, status, created_at`
	requestColumns    = `id, name, description, url, logo, email, status, created_at`
)

type friendLinkRepo struct {
	db *database.DB
}

// NewFriendLinkRepo creates a new friend link repository
func NewFriendLinkRepo(db *database.DB) FriendLinkRepository {
	return &friendLinkRepo{db: db}
}

func scanFriendLink(row rowScanner) (*models.FriendLink, error) {
	var l models.FriendLink
	if err := row.Scan(&l.ID, &l.Name, &l.Description, &l.URL, &l.Logo, &l.Status, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanRequest(row rowScanner) (*models.FriendLinkRequest, error) {
	var req models.FriendLinkRequest
	err := row.Scan(&req.ID, &req.Name, &req.Description, &req.URL, &req.Logo, &req.Email, &req.Status, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns every published link, oldest first
func (r *friendLinkRepo) List(ctx context.Context) ([]*models.FriendLink, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+friendLinkColumns+` FROM friend_links ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]*models.FriendLink, 0)
	for rows.Next() {
		link, err := scanFriendLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// Create inserts a link directly, bypassing the request flow
func (r *friendLinkRepo) Create(ctx context.Context, link *models.FriendLink) error {
	if link.Status == "" {
		link.Status = models.LinkStatusApproved
	}

	query := `
		INSERT INTO friend_links (name, description, url, logo, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		link.Name, link.Description, link.URL, link.Logo, link.Status,
	).Scan(&link.ID, &link.CreatedAt)
}

// Update applies the non-nil fields of patch; nil means no such link
func (r *friendLinkRepo) Update(ctx context.Context, patch models.FriendLinkPatch) (*models.FriendLink, error) {
	var set assignments
	if patch.Name != nil {
		set.set("name", *patch.Name)
	}
	if patch.Description != nil {
		set.set("description", *patch.Description)
	}
	if patch.URL != nil {
		set.set("url", *patch.URL)
	}
	if patch.Logo != nil {
		set.set("logo", *patch.Logo)
	}
	if patch.Status != nil {
		set.set("status", *patch.Status)
	}

	var row *sql.Row
	if set.empty() {
		row = r.db.QueryRowContext(ctx, `SELECT `+friendLinkColumns+` FROM friend_links WHERE id = $1`, patch.ID)
	} else {
		query, args := set.statement("friend_links", patch.ID, friendLinkColumns)
		row = r.db.QueryRowContext(ctx, query, args...)
	}

	link, err := scanFriendLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return link, err
}

// Delete removes a published link
func (r *friendLinkRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return rowsAffected(r.db.ExecContext(ctx, "DELETE FROM friend_links WHERE id = $1", id))
}

// ListRequests returns every submission, newest first
func (r *friendLinkRepo) ListRequests(ctx context.Context) ([]*models.FriendLinkRequest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+requestColumns+` FROM friend_link_requests ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*models.FriendLinkRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// CreateRequest stores a new pending submission
func (r *friendLinkRepo) CreateRequest(ctx context.Context, req *models.FriendLinkRequest) error {
	req.Status = models.RequestPending

	query := `
		INSERT INTO friend_link_requests (name, description, url, logo, email, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		req.Name, req.Description, req.URL, req.Logo, req.Email, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
}

// ApproveRequest publishes a pending request as a link and marks it
// approved. Both writes commit together or not at all.
func (r *friendLinkRepo) ApproveRequest(ctx context.Context, id int64) (*models.FriendLink, error) {
	var link *models.FriendLink

	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		req, err := scanRequest(tx.QueryRowContext(ctx,
			`SELECT `+requestColumns+` FROM friend_link_requests WHERE id = $1 FOR UPDATE`, id))
		if err == sql.ErrNoRows {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}
		if req.Status != models.RequestPending {
			return models.ErrPrecondition
		}

		link = &models.FriendLink{
			Name:        req.Name,
			Description: req.Description,
			URL:         req.URL,
			Logo:        req.Logo,
			Status:      models.LinkStatusApproved,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO friend_links (name, description, url, logo, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, link.Name, link.Description, link.URL, link.Logo, link.Status).Scan(&link.ID, &link.CreatedAt)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, "UPDATE friend_link_requests SET status = $2 WHERE id = $1", id, models.RequestApproved)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// RejectRequest marks a pending request rejected
func (r *friendLinkRepo) RejectRequest(ctx context.Context, id int64) error {
	updated, err := rowsAffected(r.db.ExecContext(ctx,
		"UPDATE friend_link_requests SET status = $3 WHERE id = $1 AND status = $2",
		id, models.RequestPending, models.RequestRejected))
	if err != nil {
		return err
	}
	if updated {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM friend_link_requests WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return models.ErrNotFound
	}
	return models.ErrPrecondition
}

// Count returns the number of published links
func (r *friendLinkRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db.DB, "SELECT COUNT(*) FROM friend_links")
}
