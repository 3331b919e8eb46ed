package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/rs/zerolog"
)

type messageService struct {
	repo repository.MessageRepository
	log  zerolog.Logger
}

func newMessageService(repo repository.MessageRepository, log zerolog.Logger) *messageService {
	return &messageService{
		repo: repo,
		log:  log.With().Str("service", "message").Logger(),
	}
}

// List returns a page of messages; private ones only when includePrivate
func (s *messageService) List(ctx context.Context, includePrivate bool, page models.Page) (*models.MessagePage, error) {
	messages, total, err := s.repo.List(ctx, includePrivate, page)
	if err != nil {
		return nil, err
	}
	return &models.MessagePage{List: messages, Total: total}, nil
}

func (s *messageService) Add(ctx context.Context, input *models.MessageInput) (*models.Message, error) {
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = models.DefaultAuthor
	}

	msg := &models.Message{
		Author:    author,
		Avatar:    input.Avatar,
		Content:   input.Content,
		IsPrivate: bool(input.IsPrivate),
		Email:     input.Email,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.log.Info().Int64("message_id", msg.ID).Bool("private", msg.IsPrivate).Msg("Message added")
	return msg, nil
}

func (s *messageService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("message %d: %w", id, models.ErrNotFound)
	}
	return nil
}
