package service

import (
	"context"
	"fmt"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repo repository.ArticleRepository
	log  zerolog.Logger
}

func newArticleService(repo repository.ArticleRepository, log zerolog.Logger) *articleService {
	return &articleService{
		repo: repo,
		log:  log.With().Str("service", "article").Logger(),
	}
}

// Create stores a new article, defaulting to draft
func (s *articleService) Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	status := input.Status
	if status == "" {
		status = models.ArticleDraft
	}

	article := &models.Article{
		Title:         input.Title,
		Summary:       input.Summary,
		CoverImageURL: input.CoverImageURL,
		Category:      input.Category,
		Tags:          input.Tags.Normalize(),
		ContentURL:    input.ContentURL,
		Status:        status,
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().Int64("article_id", article.ID).Str("status", string(status)).Msg("Article created")
	return article, nil
}

// Get returns an article and counts the view
func (s *articleService) Get(ctx context.Context, id int64) (*models.Article, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %d: %w", id, models.ErrNotFound)
	}
	return article, nil
}

// List returns one page of matching articles
func (s *articleService) List(ctx context.Context, filter models.ArticleFilter, page models.Page) (*models.ArticlePage, error) {
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return &models.ArticlePage{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

// Update applies a partial update
func (s *articleService) Update(ctx context.Context, id int64, patch *models.ArticlePatch) (*models.Article, error) {
	article, err := s.repo.Update(ctx, id, *patch)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %d: %w", id, models.ErrNotFound)
	}
	return article, nil
}

// Delete removes an article in any status
func (s *articleService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("article %d: %w", id, models.ErrNotFound)
	}
	s.log.Info().Int64("article_id", id).Msg("Article deleted")
	return nil
}

// Publish moves a draft to published
func (s *articleService) Publish(ctx context.Context, id int64) (*models.Article, error) {
	return s.transition(ctx, id, models.ArticleDraft, models.ArticlePublished)
}

// Unpublish moves a published article back to draft
func (s *articleService) Unpublish(ctx context.Context, id int64) (*models.Article, error) {
	return s.transition(ctx, id, models.ArticlePublished, models.ArticleDraft)
}

func (s *articleService) transition(ctx context.Context, id int64, from, to models.ArticleStatus) (*models.Article, error) {
	article, err := s.repo.TransitionStatus(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	if article != nil {
		s.log.Info().Int64("article_id", id).Str("status", string(to)).Msg("Article status changed")
		return article, nil
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("article %d: %w", id, models.ErrNotFound)
	}
	return nil, fmt.Errorf("%w: article %d is %s, expected %s", models.ErrPrecondition, id, current.Status, from)
}

// Like increments the like counter
func (s *articleService) Like(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.repo.IncrementLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %d: %w", id, models.ErrNotFound)
	}
	return article, nil
}
