package api

import (
	"github.com/gin-gonic/gin"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// MessageHandler handles the guestbook
type MessageHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(services *service.Services, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		services: services,
		log:      log.With().Str("handler", "message").Logger(),
	}
}

// List handles GET /message/list; private messages are left out
func (h *MessageHandler) List(c *gin.Context) {
	h.list(c, false)
}

// AdminList handles GET /message/admin/list
func (h *MessageHandler) AdminList(c *gin.Context) {
	h.list(c, true)
}

func (h *MessageHandler) list(c *gin.Context, includePrivate bool) {
	page := validation.ClampPage(c.Query("page"), c.Query("limit"))
	result, err := h.services.Message.List(c.Request.Context(), includePrivate, page)
	if err != nil {
		failErr(c, h.log, err, "Failed to list messages")
		return
	}
	if result.List == nil {
		result.List = []*models.Message{}
	}
	ok(c, result, "")
}

// Add handles POST /message/add
func (h *MessageHandler) Add(c *gin.Context) {
	var input models.MessageInput
	if !bindJSON(c, &input) {
		return
	}
	if err := validation.ValidateMessageInput(&input); err != nil {
		failErr(c, h.log, err, "Message rejected")
		return
	}

	msg, err := h.services.Message.Add(c.Request.Context(), &input)
	if err != nil {
		failErr(c, h.log, err, "Failed to add message")
		return
	}
	ok(c, msg, "message added")
}

// Delete handles POST /message/delete
func (h *MessageHandler) Delete(c *gin.Context) {
	id, valid := bindID(c)
	if !valid {
		return
	}
	if err := h.services.Message.Delete(c.Request.Context(), id); err != nil {
		failErr(c, h.log, err, "Failed to delete message")
		return
	}
	ok(c, nil, "message deleted")
}
