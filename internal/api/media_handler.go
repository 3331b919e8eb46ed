package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/service"
	"github.com/rs/zerolog"
)

// MediaHandler handles image and markdown uploads
type MediaHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "media").Logger(),
	}
}

// formFile reads the multipart "file" field within the upload size limit
func (h *MediaHandler) formFile(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	maxSize := h.cfg.Media.MaxUploadSize
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, CodeBadRequest, fmt.Sprintf("file too large, max size is %d MB", maxSize/(1024*1024)))
			return nil, nil, false
		}
		fail(c, CodeBadRequest, "file is required")
		return nil, nil, false
	}
	if header.Size > maxSize {
		file.Close()
		fail(c, CodeBadRequest, fmt.Sprintf("file too large, max size is %d MB", maxSize/(1024*1024)))
		return nil, nil, false
	}
	if header.Filename == "" {
		file.Close()
		fail(c, CodeBadRequest, "file name is required")
		return nil, nil, false
	}
	return file, header, true
}

// UploadImage handles POST /media/upload/image
func (h *MediaHandler) UploadImage(c *gin.Context) {
	file, header, valid := h.formFile(c)
	if !valid {
		return
	}
	defer file.Close()

	result, err := h.services.Media.UploadImage(c.Request.Context(), header.Filename, file)
	if err != nil {
		failErr(c, h.log, err, "Failed to upload image")
		return
	}
	ok(c, result, "image uploaded")
}

// UploadMarkdown handles POST /media/upload/markdown
func (h *MediaHandler) UploadMarkdown(c *gin.Context) {
	file, header, valid := h.formFile(c)
	if !valid {
		return
	}
	defer file.Close()

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))

	result, err := h.services.Media.UploadMarkdown(c.Request.Context(), header.Filename, title, description, file)
	if err != nil {
		failErr(c, h.log, err, "Failed to upload markdown")
		return
	}
	ok(c, result, "markdown uploaded")
}

// Image handles GET /media/image/:id by serving the stored file
func (h *MediaHandler) Image(c *gin.Context) {
	path, _, err := h.services.Media.ImagePath(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, h.log, err, "Failed to resolve image")
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}

// Markdown handles GET /media/markdown/:id
func (h *MediaHandler) Markdown(c *gin.Context) {
	content, err := h.services.Media.Markdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, h.log, err, "Failed to read markdown")
		return
	}
	ok(c, content, "")
}
