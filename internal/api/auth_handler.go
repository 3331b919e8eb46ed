package api

import (
	"github.com/gin-gonic/gin"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

// SendCode handles POST /auth/send_code
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.ValidateSendCode(req.Email); err != nil {
		failErr(c, h.log, err, "Send code rejected")
		return
	}

	if err := h.services.Auth.SendCode(c.Request.Context(), req.Email); err != nil {
		failErr(c, h.log, err, "Failed to send verification code")
		return
	}
	ok(c, nil, "verification code sent")
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.ValidateRegister(&req); err != nil {
		failErr(c, h.log, err, "Register rejected")
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		failErr(c, h.log, err, "Failed to register user")
		return
	}
	ok(c, gin.H{"user": user}, "registered")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.ValidateLogin(&req); err != nil {
		failErr(c, h.log, err, "Login rejected")
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		failErr(c, h.log, err, "Failed to log in")
		return
	}
	ok(c, result, "login successful")
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ok(c, gin.H{"user": CurrentUser(c.Request.Context())}, "")
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	user := CurrentUser(c.Request.Context())
	if err := h.services.Auth.Logout(c.Request.Context(), user.ID); err != nil {
		failErr(c, h.log, err, "Failed to log out")
		return
	}
	ok(c, nil, "logged out")
}
