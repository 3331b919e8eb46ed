package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// Envelope codes. CodeOK is sent with HTTP 200; every other code doubles as
// the HTTP status.
const (
	CodeOK           = 0
	CodePartial      = http.StatusPartialContent
	CodeBadRequest   = http.StatusBadRequest
	CodeUnauthorized = http.StatusUnauthorized
	CodeForbidden    = http.StatusForbidden
	CodeNotFound     = http.StatusNotFound
	CodeTooMany      = http.StatusTooManyRequests
	CodeInternal     = http.StatusInternalServerError
)

// Envelope is the body of every JSON response
type Envelope struct {
	Error int         `json:"error"`
	Body  interface{} `json:"body"`
	Msg   string      `json:"msg"`
}

func httpStatus(code int) int {
	if code == CodeOK {
		return http.StatusOK
	}
	return code
}

func respond(c *gin.Context, code int, body interface{}, msg string) {
	c.JSON(httpStatus(code), Envelope{Error: code, Body: body, Msg: msg})
}

func ok(c *gin.Context, body interface{}, msg string) {
	respond(c, CodeOK, body, msg)
}

func fail(c *gin.Context, code int, msg string) {
	respond(c, code, nil, msg)
}

func abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(httpStatus(code), Envelope{Error: code, Msg: msg})
}

// classify maps a service error to an envelope code and a client-safe message
func classify(err error) (int, string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return CodeBadRequest, verrs.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return CodeUnauthorized, err.Error()
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrUnsupportedFile):
		return CodeBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidSubmitKey):
		return CodeForbidden, err.Error()
	case errors.Is(err, models.ErrNotFound):
		return CodeNotFound, err.Error()
	case errors.Is(err, models.ErrPrecondition):
		return CodeInternal, err.Error()
	case errors.Is(err, service.ErrMailDelivery):
		return CodeInternal, err.Error()
	default:
		return CodeInternal, "internal server error"
	}
}

// failErr answers with the code for err, logging errors that are not the
// client's fault
func failErr(c *gin.Context, log zerolog.Logger, err error, action string) {
	code, msg := classify(err)
	if code == CodeInternal {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(action)
	}
	fail(c, code, msg)
}

// bindJSON decodes the request body, answering 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, CodeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// batchCode is 0 when every row succeeded, 500 when every row failed and
// 206 otherwise
func batchCode(r *models.BatchResult) int {
	switch {
	case r.ErrorCount == 0:
		return CodeOK
	case r.SuccessCount == 0:
		return CodeInternal
	default:
		return CodePartial
	}
}
