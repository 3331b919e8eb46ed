package service

import (
	"context"
	"fmt"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/rs/zerolog"
)

type friendLinkService struct {
	repo repository.FriendLinkRepository
	log  zerolog.Logger
}

func newFriendLinkService(repo repository.FriendLinkRepository, log zerolog.Logger) *friendLinkService {
	return &friendLinkService{
		repo: repo,
		log:  log.With().Str("service", "friend_link").Logger(),
	}
}

func (s *friendLinkService) List(ctx context.Context) ([]*models.FriendLink, error) {
	return s.repo.List(ctx)
}

// Create adds a link directly, skipping the request workflow
func (s *friendLinkService) Create(ctx context.Context, input *models.FriendLinkInput) (*models.FriendLink, error) {
	link := &models.FriendLink{
		Name:        input.Name,
		Description: input.Description,
		URL:         input.URL,
		Logo:        input.Logo,
		Status:      input.Status,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}
	s.log.Info().Int64("link_id", link.ID).Msg("Friend link created")
	return link, nil
}

func (s *friendLinkService) Update(ctx context.Context, patch *models.FriendLinkPatch) (*models.FriendLink, error) {
	link, err := s.repo.Update(ctx, *patch)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("friend link %d: %w", patch.ID, models.ErrNotFound)
	}
	return link, nil
}

func (s *friendLinkService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("friend link %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *friendLinkService) ListRequests(ctx context.Context) ([]*models.FriendLinkRequest, error) {
	return s.repo.ListRequests(ctx)
}

// CreateRequest files a pending submission
func (s *friendLinkService) CreateRequest(ctx context.Context, input *models.FriendLinkRequestInput) (*models.FriendLinkRequest, error) {
	req := &models.FriendLinkRequest{
		Name:        input.Name,
		Description: input.Description,
		URL:         input.URL,
		Logo:        input.Logo,
		Email:       input.Email,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	s.log.Info().Int64("request_id", req.ID).Str("url", req.URL).Msg("Friend link request received")
	return req, nil
}

// Approve publishes a pending request. Only pending requests can be
// approved; approved and rejected are terminal.
func (s *friendLinkService) Approve(ctx context.Context, id int64) (*models.FriendLink, error) {
	link, err := s.repo.ApproveRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("friend link request %d: %w", id, err)
	}
	s.log.Info().Int64("request_id", id).Int64("link_id", link.ID).Msg("Friend link request approved")
	return link, nil
}

// Reject closes a pending request without publishing it
func (s *friendLinkService) Reject(ctx context.Context, id int64) error {
	if err := s.repo.RejectRequest(ctx, id); err != nil {
		return fmt.Errorf("friend link request %d: %w", id, err)
	}
	s.log.Info().Int64("request_id", id).Msg("Friend link request rejected")
	return nil
}
