package service

import (
	"context"
	"crypto/subtle"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/rs/zerolog"
)

type activityService struct {
	repo      repository.ActivityRepository
	submitKey string
	log       zerolog.Logger
}

func newActivityService(repo repository.ActivityRepository, submitKey string, log zerolog.Logger) *activityService {
	return &activityService{
		repo:      repo,
		submitKey: submitKey,
		log:       log.With().Str("service", "activity").Logger(),
	}
}

func (s *activityService) List(ctx context.Context, filter models.ActivityFilter) ([]*models.Activity, error) {
	return s.repo.List(ctx, filter)
}

// Upsert records the day's entry, overwriting an existing one
func (s *activityService) Upsert(ctx context.Context, input *models.ActivityInput) (*models.Activity, error) {
	activity, err := s.repo.Upsert(ctx, *input)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("date", activity.Date).Str("mood", activity.Mood).Msg("Activity saved")
	return activity, nil
}

// SubmitFromEmail is Upsert for the emailed reminder form. The form must
// carry the configured submit key; with no key configured every submission
// is refused.
func (s *activityService) SubmitFromEmail(ctx context.Context, input *models.ActivityInput) (*models.Activity, error) {
	if s.submitKey == "" || subtle.ConstantTimeCompare([]byte(s.submitKey), []byte(input.Key)) != 1 {
		s.log.Warn().Str("date", input.Date).Msg("Rejected emailed activity with bad key")
		return nil, ErrInvalidSubmitKey
	}
	return s.Upsert(ctx, input)
}
