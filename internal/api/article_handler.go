package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article CRUD, lifecycle and batch requests
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// pathID parses :id, answering 400 when it is not a positive integer
func pathID(c *gin.Context) (int64, bool) {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		fail(c, CodeBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// List handles GET /article/list
func (h *ArticleHandler) List(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		if err := validation.ValidateArticleStatus(status); err != nil {
			failErr(c, h.log, err, "List rejected")
			return
		}
	}

	filter := models.ArticleFilter{
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Category: strings.TrimSpace(c.Query("category")),
		Status:   models.ArticleStatus(status),
	}
	page := validation.ClampPage(c.Query("page"), c.Query("page_size"))

	result, err := h.services.Article.List(c.Request.Context(), filter, page)
	if err != nil {
		failErr(c, h.log, err, "Failed to list articles")
		return
	}
	ok(c, result, "")
}

// Get handles GET /article/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	article, err := h.services.Article.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, h.log, err, "Failed to get article")
		return
	}
	ok(c, article, "")
}

// Upload handles POST /article/upload
func (h *ArticleHandler) Upload(c *gin.Context) {
	var input models.ArticleInput
	if !bindJSON(c, &input) {
		return
	}
	if err := validation.ValidateArticleInput(&input); err != nil {
		failErr(c, h.log, err, "Article rejected")
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &input)
	if err != nil {
		failErr(c, h.log, err, "Failed to create article")
		return
	}
	ok(c, article, "article created")
}

// Update handles PUT /article/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var patch models.ArticlePatch
	if !bindJSON(c, &patch) {
		return
	}
	if err := validation.ValidateArticlePatch(&patch); err != nil {
		failErr(c, h.log, err, "Article update rejected")
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), id, &patch)
	if err != nil {
		failErr(c, h.log, err, "Failed to update article")
		return
	}
	ok(c, article, "article updated")
}

// Delete handles DELETE /article/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.services.Article.Delete(c.Request.Context(), id); err != nil {
		failErr(c, h.log, err, "Failed to delete article")
		return
	}
	ok(c, nil, "article deleted")
}

// Publish handles PATCH /article/:id/publish
func (h *ArticleHandler) Publish(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	article, err := h.services.Article.Publish(c.Request.Context(), id)
	if err != nil {
		failErr(c, h.log, err, "Failed to publish article")
		return
	}
	ok(c, article, "article published")
}

// Unpublish handles PATCH /article/:id/unpublish
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	article, err := h.services.Article.Unpublish(c.Request.Context(), id)
	if err != nil {
		failErr(c, h.log, err, "Failed to unpublish article")
		return
	}
	ok(c, article, "article unpublished")
}

// Like handles POST /article/:id/like
func (h *ArticleHandler) Like(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	article, err := h.services.Article.Like(c.Request.Context(), id)
	if err != nil {
		failErr(c, h.log, err, "Failed to like article")
		return
	}
	ok(c, gin.H{"id": article.ID, "likes_count": article.LikesCount}, "")
}

// Batch returns the handler for POST /article/batch/<op>
func (h *ArticleHandler) Batch(op models.BatchOp) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if !bindJSON(c, &req) {
			return
		}
		if err := validation.ValidateBatch(&req); err != nil {
			failErr(c, h.log, err, "Batch rejected")
			return
		}

		result, err := h.services.Article.Batch(c.Request.Context(), op, req.ArticleIDs)
		if err != nil {
			failErr(c, h.log, err, "Batch failed")
			return
		}

		code := batchCode(result)
		msg := "batch " + string(op) + " completed"
		if code != CodeOK {
			msg = result.Summary()
		}
		respond(c, code, result, msg)
	}
}
