package repository

import (
	"context"
	"database/sql"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

type mediaRepo struct {
	db *database.DB
}

// NewMediaRepo creates a new media metadata repository
func NewMediaRepo(db *database.DB) MediaRepository {
	return &mediaRepo{db: db}
}

// Create records an uploaded file
func (r *mediaRepo) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (id, relative_path, original_filename, file_type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		media.ID, media.RelativePath, media.OriginalFilename, media.FileType,
	).Scan(&media.CreatedAt)
	return translate(err)
}

// GetByID retrieves media metadata by ID
func (r *mediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	query := `SELECT id, relative_path, original_filename, file_type, created_at FROM media WHERE id = $1`

	var m models.Media
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.RelativePath, &m.OriginalFilename, &m.FileType, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
