package repository

import (
	"context"
	"database/sql"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

const userColumns = `id, email, username, password, auth, token, created_at`

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) getOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	var user models.User
	var token sql.NullString

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Username, &user.Password, &user.Auth, &token, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.Token = token.String
	return &user, nil
}

// Create inserts a new user. A taken email surfaces as models.ErrDuplicate.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if user.Auth == "" {
		user.Auth = models.AuthNormal
	}

	query := `
		INSERT INTO users (email, username, password, auth)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.Password, user.Auth,
	).Scan(&user.ID, &user.CreatedAt)
	return translate(err)
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail retrieves a user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

// GetByToken resolves a session token to its user
func (r *userRepo) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.getOne(ctx, "token = $1", token)
}

// EmailExists checks if an email is already registered
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	return exists, err
}

// SetToken stores the session token; an empty token clears it
func (r *userRepo) SetToken(ctx context.Context, id int64, token string) error {
	var value sql.NullString
	if token != "" {
		value = sql.NullString{String: token, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, "UPDATE users SET token = $2 WHERE id = $1", id, value)
	return translate(err)
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db.DB, "SELECT COUNT(*) FROM users")
}
