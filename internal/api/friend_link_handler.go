package api

import (
	"github.com/gin-gonic/gin"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// FriendLinkHandler handles the link directory and its request queue
type FriendLinkHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewFriendLinkHandler creates a new friend link handler
func NewFriendLinkHandler(services *service.Services, log zerolog.Logger) *FriendLinkHandler {
	return &FriendLinkHandler{
		services: services,
		log:      log.With().Str("handler", "friend_link").Logger(),
	}
}

// bindID decodes an {id} body
func bindID(c *gin.Context) (int64, bool) {
	var req models.IDRequest
	if !bindJSON(c, &req) {
		return 0, false
	}
	if errs := validation.ValidateID(req.ID); errs != nil {
		fail(c, CodeBadRequest, errs.Error())
		return 0, false
	}
	return req.ID, true
}

// List handles GET /friend_link/list
func (h *FriendLinkHandler) List(c *gin.Context) {
	links, err := h.services.FriendLink.List(c.Request.Context())
	if err != nil {
		failErr(c, h.log, err, "Failed to list friend links")
		return
	}
	if links == nil {
		links = []*models.FriendLink{}
	}
	ok(c, links, "")
}

// Create handles POST /friend_link/create
func (h *FriendLinkHandler) Create(c *gin.Context) {
	var input models.FriendLinkInput
	if !bindJSON(c, &input) {
		return
	}
	if err := validation.ValidateFriendLinkInput(&input); err != nil {
		failErr(c, h.log, err, "Friend link rejected")
		return
	}

	link, err := h.services.FriendLink.Create(c.Request.Context(), &input)
	if err != nil {
		failErr(c, h.log, err, "Failed to create friend link")
		return
	}
	ok(c, link, "friend link created")
}

// Update handles POST /friend_link/update
func (h *FriendLinkHandler) Update(c *gin.Context) {
	var patch models.FriendLinkPatch
	if !bindJSON(c, &patch) {
		return
	}
	if err := validation.ValidateFriendLinkPatch(&patch); err != nil {
		failErr(c, h.log, err, "Friend link update rejected")
		return
	}

	link, err := h.services.FriendLink.Update(c.Request.Context(), &patch)
	if err != nil {
		failErr(c, h.log, err, "Failed to update friend link")
		return
	}
	ok(c, link, "friend link updated")
}

// Delete handles POST /friend_link/delete
func (h *FriendLinkHandler) Delete(c *gin.Context) {
	id, valid := bindID(c)
	if !valid {
		return
	}
	if err := h.services.FriendLink.Delete(c.Request.Context(), id); err != nil {
		failErr(c, h.log, err, "Failed to delete friend link")
		return
	}
	ok(c, nil, "friend link deleted")
}

// ListRequests handles GET /friend_link/request/list
func (h *FriendLinkHandler) ListRequests(c *gin.Context) {
	requests, err := h.services.FriendLink.ListRequests(c.Request.Context())
	if err != nil {
		failErr(c, h.log, err, "Failed to list friend link requests")
		return
	}
	if requests == nil {
		requests = []*models.FriendLinkRequest{}
	}
	ok(c, requests, "")
}

// CreateRequest handles POST /friend_link/request/create
func (h *FriendLinkHandler) CreateRequest(c *gin.Context) {
	var input models.FriendLinkRequestInput
	if !bindJSON(c, &input) {
		return
	}
	if err := validation.ValidateFriendLinkRequest(&input); err != nil {
		failErr(c, h.log, err, "Friend link request rejected")
		return
	}

	req, err := h.services.FriendLink.CreateRequest(c.Request.Context(), &input)
	if err != nil {
		failErr(c, h.log, err, "Failed to submit friend link request")
		return
	}
	ok(c, req, "request submitted, awaiting approval")
}

// Approve handles POST /friend_link/request/approve
func (h *FriendLinkHandler) Approve(c *gin.Context) {
	id, valid := bindID(c)
	if !valid {
		return
	}
	link, err := h.services.FriendLink.Approve(c.Request.Context(), id)
	if err != nil {
		failErr(c, h.log, err, "Failed to approve friend link request")
		return
	}
	ok(c, link, "request approved")
}

// Reject handles POST /friend_link/request/reject
func (h *FriendLinkHandler) Reject(c *gin.Context) {
	id, valid := bindID(c)
	if !valid {
		return
	}
	if err := h.services.FriendLink.Reject(c.Request.Context(), id); err != nil {
		failErr(c, h.log, err, "Failed to reject friend link request")
		return
	}
	ok(c, nil, "request rejected")
}
