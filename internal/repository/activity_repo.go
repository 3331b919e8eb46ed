package repository

import (
	"context"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

const activityColumns = `id, TO_CHAR(date, 'YYYY-MM-DD'), mood, description, created_at, updated_at`

type activityRepo struct {
	db *database.DB
}

// NewActivityRepo creates a new daily activity repository
func NewActivityRepo(db *database.DB) ActivityRepository {
	return &activityRepo{db: db}
}

// Upsert writes the entry for input.Date, replacing mood and description
// when the day already has one
func (r *activityRepo) Upsert(ctx context.Context, input models.ActivityInput) (*models.Activity, error) {
	query := `
		INSERT INTO daily_activities (date, mood, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE SET
			mood = EXCLUDED.mood,
			description = EXCLUDED.description,
			updated_at = NOW()
		RETURNING ` + activityColumns

	var a models.Activity
	err := r.db.QueryRowContext(ctx, query, input.Date, input.Mood, input.Description).Scan(
		&a.ID, &a.Date, &a.Mood, &a.Description, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns entries inside the inclusive date range, newest day first
func (r *activityRepo) List(ctx context.Context, filter models.ActivityFilter) ([]*models.Activity, error) {
	var cond conditions
	if filter.StartDate != "" {
		cond.add("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		cond.add("date <= ?", filter.EndDate)
	}

	query := `SELECT ` + activityColumns + ` FROM daily_activities` + cond.where() +
		` ORDER BY date DESC LIMIT ` + cond.next()
	args := append(cond.args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]*models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Date, &a.Mood, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

// Count returns the number of recorded days
func (r *activityRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db.DB, "SELECT COUNT(*) FROM daily_activities")
}
