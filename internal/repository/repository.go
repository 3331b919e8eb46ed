package repository

import (
	"context"

	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/models"
)

// UserRepository defines the interface for user and token data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SetToken(ctx context.Context, id int64, token string) error
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter, page models.Page) ([]*models.Article, int, error)
	Update(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id int64) (bool, error)
	TransitionStatus(ctx context.Context, id int64, from, to models.ArticleStatus) (*models.Article, error)
	IncrementViews(ctx context.Context, id int64) error
	IncrementLikes(ctx context.Context, id int64) (*models.Article, error)
	Count(ctx context.Context) (int, error)
	RunBatch(ctx context.Context, fn func(tx ArticleTx) error) error
}

// ArticleTx is the per-row view of a batch transaction. A failing call does
// not invalidate the transaction for later rows.
type ArticleTx interface {
	Status(ctx context.Context, id int64) (models.ArticleStatus, bool, error)
	SetStatus(ctx context.Context, id int64, status models.ArticleStatus) error
	Delete(ctx context.Context, id int64) error
}

// ActivityRepository defines the interface for daily activity operations
type ActivityRepository interface {
	Upsert(ctx context.Context, input models.ActivityInput) (*models.Activity, error)
	List(ctx context.Context, filter models.ActivityFilter) ([]*models.Activity, error)
	Count(ctx context.Context) (int, error)
}

// FriendLinkRepository defines the interface for friend links and requests
type FriendLinkRepository interface {
	List(ctx context.Context) ([]*models.FriendLink, error)
	Create(ctx context.Context, link *models.FriendLink) error
	Update(ctx context.Context, patch models.FriendLinkPatch) (*models.FriendLink, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListRequests(ctx context.Context) ([]*models.FriendLinkRequest, error)
	CreateRequest(ctx context.Context, req *models.FriendLinkRequest) error
	ApproveRequest(ctx context.Context, id int64) (*models.FriendLink, error)
	RejectRequest(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// MessageRepository defines the interface for guestbook messages
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	List(ctx context.Context, includePrivate bool, page models.Page) ([]*models.Message, int, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// MediaRepository defines the interface for media metadata
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id string) (*models.Media, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Article    ArticleRepository
	Activity   ActivityRepository
	FriendLink FriendLinkRepository
	Message    MessageRepository
	Media      MediaRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepo(db),
		Article:    NewArticleRepo(db),
		Activity:   NewActivityRepo(db),
		FriendLink: NewFriendLinkRepo(db),
		Message:    NewMessageRepo(db),
		Media:      NewMediaRepo(db),
	}
}
