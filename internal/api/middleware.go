package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type ctxKeyUser struct{}

// WithUser attaches the authenticated user to ctx
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, user)
}

// CurrentUser returns the user attached by the auth middleware, or nil
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(ctxKeyUser{}).(*models.User)
	return user
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Msg("Panic recovered")
				abort(c, CodeInternal, "internal server error")
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}
		if user := CurrentUser(c.Request.Context()); user != nil {
			event = event.Int64("user_id", user.ID)
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// bearerToken reads the Authorization header; the Bearer prefix is optional
func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header
}

// authGate resolves the bearer token into a user
type authGate struct {
	auth service.AuthService
	log  zerolog.Logger
}

func newAuthGate(auth service.AuthService, log zerolog.Logger) *authGate {
	return &authGate{auth: auth, log: log.With().Str("component", "auth_gate").Logger()}
}

func (g *authGate) check(adminOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" || token == models.PlaceholderToken {
			abort(c, CodeUnauthorized, "login required")
			return
		}

		user, err := g.auth.VerifyToken(c.Request.Context(), token)
		if err != nil {
			g.log.Error().Err(err).Msg("Token lookup failed")
			abort(c, CodeInternal, "internal server error")
			return
		}
		if user == nil {
			abort(c, CodeUnauthorized, "invalid token")
			return
		}
		if adminOnly && !user.IsAdmin() {
			abort(c, CodeForbidden, "admin access required")
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// RequireAuth admits any logged-in user
func (g *authGate) RequireAuth() gin.HandlerFunc {
	return g.check(false)
}

// RequireAdmin admits users whose auth flag grants admin access
func (g *authGate) RequireAdmin() gin.HandlerFunc {
	return g.check(true)
}

// maxTrackedClients bounds the limiter table; the least recently seen
// clients are evicted first
const maxTrackedClients = 4096

// rateLimiter keeps one token bucket per client IP
type rateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	limiters, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &rateLimiter{
		limiters: limiters,
		limit:    rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		burst:    cfg.Burst,
	}
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.limiters.Get(key)
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters.Add(key, l)
	}
	return l
}

const tooManyRequests = "too many requests, slow down"

// Middleware rejects requests with a JSON envelope once the client's bucket
// is empty
func (rl *rateLimiter) Middleware() gin.HandlerFunc {
	return rl.MiddlewareWith(func(c *gin.Context) {
		abort(c, CodeTooMany, tooManyRequests)
	})
}

// MiddlewareWith calls reject instead of the next handler once the client's
// bucket is empty; reject must abort the chain
func (rl *rateLimiter) MiddlewareWith(reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.get(c.ClientIP()).Allow() {
			reject(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
