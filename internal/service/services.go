package service

import (
	"context"
	"errors"
	"io"

	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/mail"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/personal-blog-api/internal/verification"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an existing email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCode is returned for a missing, expired or wrong verification code
	ErrInvalidCode = errors.New("invalid or expired verification code")

	// ErrUnsupportedFile is returned for uploads with a disallowed extension
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrMailDelivery is returned when an email could not be sent
	ErrMailDelivery = errors.New("failed to send email")

	// ErrInvalidSubmitKey is returned when an emailed form carries a wrong key
	ErrInvalidSubmitKey = errors.New("invalid submit key")
)

// AuthService defines registration, login and token resolution
type AuthService interface {
	SendCode(ctx context.Context, email string) error
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, userID int64) error
}

// ArticleService defines article CRUD, lifecycle and batch operations
type ArticleService interface {
	Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter, page models.Page) (*models.ArticlePage, error)
	Update(ctx context.Context, id int64, patch *models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
	Publish(ctx context.Context, id int64) (*models.Article, error)
	Unpublish(ctx context.Context, id int64) (*models.Article, error)
	Like(ctx context.Context, id int64) (*models.Article, error)
	Batch(ctx context.Context, op models.BatchOp, ids []int64) (*models.BatchResult, error)
}

// ActivityService defines the daily activity log
type ActivityService interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]*models.Activity, error)
	Upsert(ctx context.Context, input *models.ActivityInput) (*models.Activity, error)
	SubmitFromEmail(ctx context.Context, input *models.ActivityInput) (*models.Activity, error)
}

// FriendLinkService defines the link directory and its request workflow
type FriendLinkService interface {
	List(ctx context.Context) ([]*models.FriendLink, error)
	Create(ctx context.Context, input *models.FriendLinkInput) (*models.FriendLink, error)
	Update(ctx context.Context, patch *models.FriendLinkPatch) (*models.FriendLink, error)
	Delete(ctx context.Context, id int64) error
	ListRequests(ctx context.Context) ([]*models.FriendLinkRequest, error)
	CreateRequest(ctx context.Context, input *models.FriendLinkRequestInput) (*models.FriendLinkRequest, error)
	Approve(ctx context.Context, id int64) (*models.FriendLink, error)
	Reject(ctx context.Context, id int64) error
}

// MessageService defines the guestbook
type MessageService interface {
	List(ctx context.Context, includePrivate bool, page models.Page) (*models.MessagePage, error)
	Add(ctx context.Context, input *models.MessageInput) (*models.Message, error)
	Delete(ctx context.Context, id int64) error
}

// MediaService defines uploads and lookups of images and markdown files
type MediaService interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error)
	UploadMarkdown(ctx context.Context, filename, title, description string, r io.Reader) (*models.UploadResult, error)
	ImagePath(ctx context.Context, id string) (string, *models.Media, error)
	Markdown(ctx context.Context, id string) (*models.MarkdownContent, error)
}

// StatsService reports row counts for the metrics endpoint
type StatsService interface {
	Counts(ctx context.Context) (map[string]int, error)
}

// FileStore is the file backend behind MediaService
type FileStore interface {
	Save(fileType models.FileType, originalName string, r io.Reader) (rel string, sanitized string, err error)
	Path(fileType models.FileType, rel string) (string, error)
	Read(fileType models.FileType, rel string) ([]byte, error)
	Remove(fileType models.FileType, rel string) error
}

// Deps are the non-database collaborators of the services
type Deps struct {
	Codes  verification.Store
	Mailer mail.Mailer
	Files  FileStore
}

// Services holds all service interfaces
type Services struct {
	Auth       AuthService
	Article    ArticleService
	Activity   ActivityService
	FriendLink FriendLinkService
	Message    MessageService
	Media      MediaService
	Stats      StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, deps Deps, cfg *config.Config, log zerolog.Logger) (*Services, error) {
	mediaSvc, err := newMediaService(repos.Media, deps.Files, cfg.Media.CacheSize, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:       newAuthService(repos.User, deps.Codes, deps.Mailer, cfg, log),
		Article:    newArticleService(repos.Article, log),
		Activity:   newActivityService(repos.Activity, cfg.Reminder.SubmitKey, log),
		FriendLink: newFriendLinkService(repos.FriendLink, log),
		Message:    newMessageService(repos.Message, log),
		Media:      mediaSvc,
		Stats:      newStatsService(repos),
	}, nil
}
