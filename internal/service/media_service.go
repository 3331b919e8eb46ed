package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/personal-blog-api/internal/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// mediaService stores uploads and serves metadata through an LRU cache.
// Media rows are never updated, so cached entries never go stale.
type mediaService struct {
	repo  repository.MediaRepository
	files FileStore
	cache *lru.Cache[string, *models.Media]
	group singleflight.Group
	log   zerolog.Logger
}

func newMediaService(repo repository.MediaRepository, files FileStore, cacheSize int, log zerolog.Logger) (*mediaService, error) {
	if cacheSize <= 0 {
		cacheSize = 512
	}
	cache, err := lru.New[string, *models.Media](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create media cache: %w", err)
	}
	return &mediaService{
		repo:  repo,
		files: files,
		cache: cache,
		log:   log.With().Str("service", "media").Logger(),
	}, nil
}

func (s *mediaService) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	media, err := s.store(ctx, models.FileTypeImage, filename, r)
	if err != nil {
		return nil, err
	}
	return &models.UploadResult{ID: media.ID, URL: "/media/image/" + media.ID}, nil
}

func (s *mediaService) UploadMarkdown(ctx context.Context, filename, title, description string, r io.Reader) (*models.UploadResult, error) {
	media, err := s.store(ctx, models.FileTypeMarkdown, filename, r)
	if err != nil {
		return nil, err
	}
	return &models.UploadResult{
		ID:          media.ID,
		URL:         "/media/markdown/" + media.ID,
		Title:       title,
		Description: description,
	}, nil
}

// store writes the file first and the metadata row second; a failed insert
// removes the written file
func (s *mediaService) store(ctx context.Context, fileType models.FileType, filename string, r io.Reader) (*models.Media, error) {
	if !storage.Allowed(fileType, filename) {
		return nil, ErrUnsupportedFile
	}

	rel, sanitized, err := s.files.Save(fileType, filename, r)
	if err != nil {
		return nil, err
	}

	media := &models.Media{
		ID:               uuid.NewString(),
		RelativePath:     rel,
		OriginalFilename: sanitized,
		FileType:         fileType,
	}
	if err := s.repo.Create(ctx, media); err != nil {
		if rmErr := s.files.Remove(fileType, rel); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", rel).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}

	s.cache.Add(media.ID, media)
	s.log.Info().
		Str("media_id", media.ID).
		Str("file_type", string(fileType)).
		Str("path", rel).
		Msg("Media uploaded")
	return media, nil
}

// sharedLookupTimeout bounds a coalesced query, which outlives the caller
// that started it
const sharedLookupTimeout = 5 * time.Second

// lookup returns metadata of the given type. Concurrent misses for the
// same ID share one query.
func (s *mediaService) lookup(ctx context.Context, id string, fileType models.FileType) (*models.Media, error) {
	media, ok := s.cache.Get(id)
	if !ok {
		v, err, _ := s.group.Do(id, func() (interface{}, error) {
			shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
			defer cancel()
			m, err := s.repo.GetByID(shared, id)
			if err != nil || m == nil {
				return m, err
			}
			s.cache.Add(id, m)
			return m, nil
		})
		if err != nil {
			return nil, err
		}
		media = v.(*models.Media)
	}

	if media == nil || media.FileType != fileType {
		return nil, fmt.Errorf("%s %s: %w", fileType, id, models.ErrNotFound)
	}
	return media, nil
}

// ImagePath resolves an image ID to the file on disk
func (s *mediaService) ImagePath(ctx context.Context, id string) (string, *models.Media, error) {
	media, err := s.lookup(ctx, id, models.FileTypeImage)
	if err != nil {
		return "", nil, err
	}
	path, err := s.files.Path(models.FileTypeImage, media.RelativePath)
	if err != nil {
		return "", nil, err
	}
	return path, media, nil
}

// Markdown returns the stored markdown text
func (s *mediaService) Markdown(ctx context.Context, id string) (*models.MarkdownContent, error) {
	media, err := s.lookup(ctx, id, models.FileTypeMarkdown)
	if err != nil {
		return nil, err
	}
	content, err := s.files.Read(models.FileTypeMarkdown, media.RelativePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown %s: %w", id, err)
	}
	return &models.MarkdownContent{
		ID:               media.ID,
		Content:          string(content),
		OriginalFilename: media.OriginalFilename,
	}, nil
}
