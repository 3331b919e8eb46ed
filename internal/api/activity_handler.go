package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

const submitResultPage = "submit_result"

// submitResultTemplate is the page shown after posting the emailed form
var submitResultTemplate = template.Must(template.New(submitResultPage).Parse(`
<div style="text-align: center; margin-top: 50px; font-family: sans-serif;">
{{if .OK}}
  <h1 style="color: #4a90e2;">Update Successful!</h1>
  <p>Your daily activity has been recorded.</p>
  <p>Mood: {{.Mood}}</p>
  <p>Date: {{.Date}}</p>
  <script>setTimeout(function(){window.close();}, 3000);</script>
{{else}}
  <h2 style="color: red;">{{.Title}}</h2>
  <p>{{.Message}}</p>
{{end}}
</div>
`))

// ActivityHandler handles the daily activity log
type ActivityHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(services *service.Services, log zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		services: services,
		log:      log.With().Str("handler", "activity").Logger(),
	}
}

// List handles GET /activity/list
func (h *ActivityHandler) List(c *gin.Context) {
	start, end := c.Query("start_date"), c.Query("end_date")
	if err := validation.ValidateActivityRange(start, end); err != nil {
		failErr(c, h.log, err, "Activity range rejected")
		return
	}

	filter := models.ActivityFilter{
		StartDate: start,
		EndDate:   end,
		Limit:     validation.ClampActivityLimit(c.Query("limit")),
	}
	activities, err := h.services.Activity.List(c.Request.Context(), filter)
	if err != nil {
		failErr(c, h.log, err, "Failed to list activities")
		return
	}
	if activities == nil {
		activities = []*models.Activity{}
	}
	ok(c, activities, "")
}

// Upload handles POST /activity/upload
func (h *ActivityHandler) Upload(c *gin.Context) {
	var input models.ActivityInput
	if !bindJSON(c, &input) {
		return
	}
	if err := validation.ValidateActivityInput(&input); err != nil {
		failErr(c, h.log, err, "Activity rejected")
		return
	}

	activity, err := h.services.Activity.Upsert(c.Request.Context(), &input)
	if err != nil {
		failErr(c, h.log, err, "Failed to save activity")
		return
	}
	ok(c, activity, "activity saved")
}

// SubmitFromEmail handles POST /activity/submit_from_email. The caller is a
// browser following the reminder email, so every answer is an HTML page.
func (h *ActivityHandler) SubmitFromEmail(c *gin.Context) {
	var input models.ActivityInput
	if err := c.ShouldBind(&input); err != nil {
		h.page(c, http.StatusBadRequest, "Submission Failed", "The form could not be read.")
		return
	}
	if err := validation.ValidateActivityInput(&input); err != nil {
		h.page(c, http.StatusBadRequest, "Submission Failed", err.Error())
		return
	}

	activity, err := h.services.Activity.SubmitFromEmail(c.Request.Context(), &input)
	if err != nil {
		code, msg := classify(err)
		if code == CodeInternal {
			h.log.Error().Err(err).Msg("Failed to save emailed activity")
		}
		h.page(c, code, "Error", msg)
		return
	}

	c.HTML(http.StatusOK, submitResultPage, gin.H{
		"OK":   true,
		"Mood": activity.Mood,
		"Date": activity.Date,
	})
}

// TooManyRequests answers a rate-limited form post with the result page
func (h *ActivityHandler) TooManyRequests(c *gin.Context) {
	h.page(c, http.StatusTooManyRequests, "Too Many Requests", tooManyRequests)
	c.Abort()
}

func (h *ActivityHandler) page(c *gin.Context, status int, title, message string) {
	c.HTML(status, submitResultPage, gin.H{"Title": title, "Message": message})
}
