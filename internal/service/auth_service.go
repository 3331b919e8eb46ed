package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/mail"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/repository"
	"github.com/personal-blog-api/internal/verification"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users   repository.UserRepository
	codes   verification.Store
	mailer  mail.Mailer
	codeTTL time.Duration
	site    string
	log     zerolog.Logger
	now     func() time.Time
}

func newAuthService(users repository.UserRepository, codes verification.Store, mailer mail.Mailer, cfg *config.Config, log zerolog.Logger) *authService {
	return &authService{
		users:   users,
		codes:   codes,
		mailer:  mailer,
		codeTTL: cfg.Auth.CodeTTL,
		site:    cfg.Mail.SiteName,
		log:     log.With().Str("service", "auth").Logger(),
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode returns a uniformly random 6-digit code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// newToken derives an opaque session token from the user ID, the current
// time and random entropy
func newToken(userID int64, now time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d_%d_%s", userID, now.Unix(), uuid.NewString())))
	return hex.EncodeToString(sum[:])
}

// SendCode stores a fresh code for the address and mails it
func (s *authService) SendCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	if err := s.codes.Set(ctx, verification.Key(email), code, s.codeTTL); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	msg, err := mail.VerificationCode(s.site, email, code, s.codeTTL)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("Failed to send verification code")
		return ErrMailDelivery
	}

	s.log.Info().Str("email", email).Msg("Verification code sent")
	return nil
}

// Register checks the code and creates a normal user
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	key := verification.Key(email)

	stored, found, err := s.codes.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read code: %w", err)
	}
	if !found || subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(req.Code))) != 1 {
		return nil, ErrInvalidCode
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Username: strings.TrimSpace(req.Username),
		Password: string(hash),
		Auth:     models.AuthNormal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.codes.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("Failed to delete used verification code")
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies the password and replaces the user's token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := newToken(user.ID, s.now())
	if err := s.users.SetToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	user.Token = token

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return &models.LoginResult{User: user, Token: token}, nil
}

// VerifyToken resolves a token to its user. Empty and placeholder tokens
// resolve to nil without touching storage.
func (s *authService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" || token == models.PlaceholderToken {
		return nil, nil
	}
	return s.users.GetByToken(ctx, token)
}

// Logout clears the user's token
func (s *authService) Logout(ctx context.Context, userID int64) error {
	return s.users.SetToken(ctx, userID, "")
}
