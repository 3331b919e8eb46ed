package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[int64]*models.User
	EmailToUser map[string]*models.User
	InsertError error
	nextID      int64
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[int64]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, exists := m.EmailToUser[user.Email]; exists {
		return models.ErrDuplicate
	}
	if user.Auth == "" {
		user.Auth = models.AuthNormal
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.EmailToUser[email], nil
}

func (m *MockUserRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	for _, u := range m.Users {
		if u.Token == token {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, exists := m.EmailToUser[email]
	return exists, nil
}

func (m *MockUserRepository) SetToken(ctx context.Context, id int64, token string) error {
	if u, ok := m.Users[id]; ok {
		u.Token = token
	}
	return nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles    map[int64]*models.Article
	InsertError error
	// RowErrors injects a failure for the batch row with that ID
	RowErrors  map[int64]error
	BatchCalls int
	nextID     int64
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles:  make(map[int64]*models.Article),
		RowErrors: make(map[int64]error),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	article.ID = m.nextID
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().Add(time.Duration(m.nextID) * time.Millisecond)
	}
	if article.Tags == nil {
		article.Tags = models.TagList{}
	}
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return m.Articles[id], nil
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter, page models.Page) ([]*models.Article, int, error) {
	matched := make([]*models.Article, 0)
	for _, a := range m.Articles {
		if filter.Keyword != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(filter.Keyword)) {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		matched = append(matched, a)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, page), len(matched), nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, error) {
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Summary != nil {
		a.Summary = *patch.Summary
	}
	if patch.CoverImageURL != nil {
		a.CoverImageURL = *patch.CoverImageURL
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Tags != nil {
		a.Tags = patch.Tags.Normalize()
	}
	if patch.ContentURL != nil {
		a.ContentURL = *patch.ContentURL
	}
	return a, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.Articles[id]; !ok {
		return false, nil
	}
	delete(m.Articles, id)
	return true, nil
}

func (m *MockArticleRepository) TransitionStatus(ctx context.Context, id int64, from, to models.ArticleStatus) (*models.Article, error) {
	a, ok := m.Articles[id]
	if !ok || a.Status != from {
		return nil, nil
	}
	a.Status = to
	return a, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id int64) error {
	if a, ok := m.Articles[id]; ok {
		a.ViewsCount++
	}
	return nil
}

func (m *MockArticleRepository) IncrementLikes(ctx context.Context, id int64) (*models.Article, error) {
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	a.LikesCount++
	return a, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

// RunBatch snapshots the table and restores it when fn fails
func (m *MockArticleRepository) RunBatch(ctx context.Context, fn func(tx repository.ArticleTx) error) error {
	m.BatchCalls++

	snapshot := make(map[int64]models.Article, len(m.Articles))
	for id, a := range m.Articles {
		snapshot[id] = *a
	}

	if err := fn(&mockArticleTx{repo: m}); err != nil {
		m.Articles = make(map[int64]*models.Article, len(snapshot))
		for id, a := range snapshot {
			a := a
			m.Articles[id] = &a
		}
		return err
	}
	return nil
}

type mockArticleTx struct {
	repo *MockArticleRepository
}

func (t *mockArticleTx) Status(ctx context.Context, id int64) (models.ArticleStatus, bool, error) {
	a, ok := t.repo.Articles[id]
	if !ok {
		return "", false, nil
	}
	return a.Status, true, nil
}

func (t *mockArticleTx) SetStatus(ctx context.Context, id int64, status models.ArticleStatus) error {
	if err := t.repo.RowErrors[id]; err != nil {
		return err
	}
	if a, ok := t.repo.Articles[id]; ok {
		a.Status = status
	}
	return nil
}

func (t *mockArticleTx) Delete(ctx context.Context, id int64) error {
	if err := t.repo.RowErrors[id]; err != nil {
		return err
	}
	delete(t.repo.Articles, id)
	return nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	Activities  map[string]*models.Activity
	UpsertError error
	nextID      int64
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{
		Activities: make(map[string]*models.Activity),
	}
}

func (m *MockActivityRepository) Upsert(ctx context.Context, input models.ActivityInput) (*models.Activity, error) {
	if m.UpsertError != nil {
		return nil, m.UpsertError
	}
	now := time.Now()
	if a, ok := m.Activities[input.Date]; ok {
		a.Mood = input.Mood
		a.Description = input.Description
		a.UpdatedAt = now
		return a, nil
	}
	m.nextID++
	a := &models.Activity{
		ID:          m.nextID,
		Date:        input.Date,
		Mood:        input.Mood,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.Activities[input.Date] = a
	return a, nil
}

func (m *MockActivityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]*models.Activity, error) {
	out := make([]*models.Activity, 0)
	for date, a := range m.Activities {
		if filter.StartDate != "" && date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && date > filter.EndDate {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MockActivityRepository) Count(ctx context.Context) (int, error) {
	return len(m.Activities), nil
}

// MockFriendLinkRepository is a mock implementation of FriendLinkRepository
type MockFriendLinkRepository struct {
	Links    map[int64]*models.FriendLink
	Requests map[int64]*models.FriendLinkRequest
	// LinkInsertError makes the link insert inside ApproveRequest fail
	LinkInsertError error
	nextLinkID      int64
	nextRequestID   int64
}

func NewMockFriendLinkRepository() *MockFriendLinkRepository {
	return &MockFriendLinkRepository{
		Links:    make(map[int64]*models.FriendLink),
		Requests: make(map[int64]*models.FriendLinkRequest),
	}
}

func (m *MockFriendLinkRepository) List(ctx context.Context) ([]*models.FriendLink, error) {
	out := make([]*models.FriendLink, 0, len(m.Links))
	for _, l := range m.Links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockFriendLinkRepository) Create(ctx context.Context, link *models.FriendLink) error {
	if link.Status == "" {
		link.Status = models.LinkStatusApproved
	}
	m.nextLinkID++
	link.ID = m.nextLinkID
	link.CreatedAt = time.Now()
	m.Links[link.ID] = link
	return nil
}

func (m *MockFriendLinkRepository) Update(ctx context.Context, patch models.FriendLinkPatch) (*models.FriendLink, error) {
	l, ok := m.Links[patch.ID]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Description != nil {
		l.Description = *patch.Description
	}
	if patch.URL != nil {
		l.URL = *patch.URL
	}
	if patch.Logo != nil {
		l.Logo = *patch.Logo
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	return l, nil
}

func (m *MockFriendLinkRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.Links[id]; !ok {
		return false, nil
	}
	delete(m.Links, id)
	return true, nil
}

func (m *MockFriendLinkRepository) ListRequests(ctx context.Context) ([]*models.FriendLinkRequest, error) {
	out := make([]*models.FriendLinkRequest, 0, len(m.Requests))
	for _, r := range m.Requests {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockFriendLinkRepository) CreateRequest(ctx context.Context, req *models.FriendLinkRequest) error {
	m.nextRequestID++
	req.ID = m.nextRequestID
	req.Status = models.RequestPending
	req.CreatedAt = time.Now()
	m.Requests[req.ID] = req
	return nil
}

func (m *MockFriendLinkRepository) ApproveRequest(ctx context.Context, id int64) (*models.FriendLink, error) {
	req, ok := m.Requests[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if req.Status != models.RequestPending {
		return nil, models.ErrPrecondition
	}
	if m.LinkInsertError != nil {
		return nil, m.LinkInsertError
	}

	link := &models.FriendLink{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Logo:        req.Logo,
		Status:      models.LinkStatusApproved,
	}
	m.Create(ctx, link)
	req.Status = models.RequestApproved
	return link, nil
}

func (m *MockFriendLinkRepository) RejectRequest(ctx context.Context, id int64) error {
	req, ok := m.Requests[id]
	if !ok {
		return models.ErrNotFound
	}
	if req.Status != models.RequestPending {
		return models.ErrPrecondition
	}
	req.Status = models.RequestRejected
	return nil
}

func (m *MockFriendLinkRepository) Count(ctx context.Context) (int, error) {
	return len(m.Links), nil
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	Messages    map[int64]*models.Message
	InsertError error
	nextID      int64
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		Messages: make(map[int64]*models.Message),
	}
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	msg.ID = m.nextID
	msg.CreatedAt = time.Now().Add(time.Duration(m.nextID) * time.Millisecond)
	m.Messages[msg.ID] = msg
	return nil
}

func (m *MockMessageRepository) List(ctx context.Context, includePrivate bool, page models.Page) ([]*models.Message, int, error) {
	matched := make([]*models.Message, 0)
	for _, msg := range m.Messages {
		if msg.IsPrivate && !includePrivate {
			continue
		}
		matched = append(matched, msg)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, page), len(matched), nil
}

func (m *MockMessageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.Messages[id]; !ok {
		return false, nil
	}
	delete(m.Messages, id)
	return true, nil
}

func (m *MockMessageRepository) Count(ctx context.Context) (int, error) {
	return len(m.Messages), nil
}

// MockMediaRepository is a mock implementation of MediaRepository
type MockMediaRepository struct {
	mu           sync.Mutex
	Media        map[string]*models.Media
	InsertError  error
	GetByIDCalls int
	// BeforeGetByID runs ahead of every lookup; a non-nil error is returned
	BeforeGetByID func(ctx context.Context) error
}

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{
		Media: make(map[string]*models.Media),
	}
}

func (m *MockMediaRepository) Create(ctx context.Context, media *models.Media) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	media.CreatedAt = time.Now()
	m.Media[media.ID] = media
	return nil
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	if m.BeforeGetByID != nil {
		if err := m.BeforeGetByID(ctx); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetByIDCalls++
	return m.Media[id], nil
}

// NewMockRepositories wires fresh mocks into a Repositories value
func NewMockRepositories() (*repository.Repositories, *MockSet) {
	set := &MockSet{
		User:       NewMockUserRepository(),
		Article:    NewMockArticleRepository(),
		Activity:   NewMockActivityRepository(),
		FriendLink: NewMockFriendLinkRepository(),
		Message:    NewMockMessageRepository(),
		Media:      NewMockMediaRepository(),
	}
	return &repository.Repositories{
		User:       set.User,
		Article:    set.Article,
		Activity:   set.Activity,
		FriendLink: set.FriendLink,
		Message:    set.Message,
		Media:      set.Media,
	}, set
}

// MockSet exposes the concrete mocks behind NewMockRepositories
type MockSet struct {
	User       *MockUserRepository
	Article    *MockArticleRepository
	Activity   *MockActivityRepository
	FriendLink *MockFriendLinkRepository
	Message    *MockMessageRepository
	Media      *MockMediaRepository
}

func paginate[T any](items []T, page models.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
