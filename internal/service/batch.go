package service

import (
	"context"
	"fmt"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
)

// Batch applies op to every ID inside one transaction. Row failures are
// recorded in the result and never abort the remaining rows; only a failure
// of the transaction itself is returned as an error.
func (s *articleService) Batch(ctx context.Context, op models.BatchOp, ids []int64) (*models.BatchResult, error) {
	result := &models.BatchResult{Errors: []string{}}

	err := s.repo.RunBatch(ctx, func(tx repository.ArticleTx) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Record(s.applyRow(ctx, tx, op, id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch %s failed: %w", op, err)
	}

	s.log.Info().
		Str("op", string(op)).
		Int("requested", len(ids)).
		Int("succeeded", result.SuccessCount).
		Int("failed", result.ErrorCount).
		Msg("Batch completed")

	return result, nil
}

func (s *articleService) applyRow(ctx context.Context, tx repository.ArticleTx, op models.BatchOp, id int64) error {
	status, found, err := tx.Status(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("article_id", id).Msg("Batch row lookup failed")
		return fmt.Errorf("article %d: lookup failed", id)
	}
	if !found {
		return fmt.Errorf("article %d: not found", id)
	}

	required := op.RequiredStatus()
	if status != required {
		return fmt.Errorf("article %d: status is %s, expected %s", id, status, required)
	}

	switch op {
	case models.BatchDelete:
		err = tx.Delete(ctx, id)
	case models.BatchPublish:
		err = tx.SetStatus(ctx, id, models.ArticlePublished)
	case models.BatchUnpublish:
		err = tx.SetStatus(ctx, id, models.ArticleDraft)
	default:
		return fmt.Errorf("article %d: unknown operation %s", id, op)
	}
	if err != nil {
		s.log.Error().Err(err).Int64("article_id", id).Str("op", string(op)).Msg("Batch row failed")
		return fmt.Errorf("article %d: %s failed", id, op)
	}
	return nil
}
