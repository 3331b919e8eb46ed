package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/personal-blog-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Activity listing limits
const (
	DefaultActivityLimit = 100
	MaxActivityLimit     = 366
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// Errors is a list of field errors that also satisfies error
type Errors []models.ValidationError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Message
	}
	return strings.Join(msgs, "; ")
}

// Err returns nil when there are no errors
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func required(errs Errors, field, value string) Errors {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, models.ValidationError{Field: field, Message: field + " is required"})
	}
	return errs
}

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsHTTPURL reports whether s is an absolute http(s) URL
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsDate reports whether s is a YYYY-MM-DD calendar date
func IsDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

func email(errs Errors, field, value string) Errors {
	if value == "" {
		return append(errs, models.ValidationError{Field: field, Message: field + " is required"})
	}
	if !IsEmail(value) {
		return append(errs, models.ValidationError{Field: field, Message: "invalid email format", Value: value})
	}
	return errs
}

// ValidateSendCode validates the verification code request
func ValidateSendCode(addr string) error {
	return email(nil, "email", addr).Err()
}

// ValidateRegister validates a registration payload
func ValidateRegister(req *models.RegisterRequest) error {
	errs := email(nil, "email", req.Email)
	errs = required(errs, "code", req.Code)
	errs = required(errs, "username", req.Username)
	if req.Password == "" {
		errs = append(errs, models.ValidationError{Field: "password", Message: "password is required"})
	} else if len(req.Password) < MinPasswordLength {
		errs = append(errs, models.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		})
	}
	return errs.Err()
}

// ValidateLogin validates a login payload
func ValidateLogin(req *models.LoginRequest) error {
	errs := required(nil, "email", req.Email)
	errs = required(errs, "password", req.Password)
	return errs.Err()
}

// ValidateArticleInput validates an article create payload
func ValidateArticleInput(in *models.ArticleInput) error {
	errs := required(nil, "title", in.Title)
	errs = required(errs, "content_url", in.ContentURL)
	if in.Status != "" && !models.ValidStatuses[in.Status] {
		errs = append(errs, models.ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published",
			Value:   in.Status,
		})
	}
	return errs.Err()
}

// ValidateArticlePatch validates a partial article update
func ValidateArticlePatch(p *models.ArticlePatch) error {
	if p.IsEmpty() {
		return Errors{{Message: "no fields to update"}}
	}
	var errs Errors
	if p.Title != nil {
		errs = required(errs, "title", *p.Title)
	}
	if p.ContentURL != nil {
		errs = required(errs, "content_url", *p.ContentURL)
	}
	return errs.Err()
}

// ValidateArticleStatus validates the optional status list filter
func ValidateArticleStatus(status string) error {
	if status != "" && !models.ValidStatuses[models.ArticleStatus(status)] {
		return Errors{{Field: "status", Message: "invalid status, must be one of: draft, published", Value: status}}
	}
	return nil
}

// ValidateBatch validates a batch request
func ValidateBatch(req *models.BatchRequest) error {
	if len(req.ArticleIDs) == 0 {
		return Errors{{Field: "article_ids", Message: "article_ids must be a non-empty list"}}
	}
	var errs Errors
	for _, id := range req.ArticleIDs {
		if id <= 0 {
			errs = append(errs, models.ValidationError{Field: "article_ids", Message: "article ids must be positive", Value: id})
		}
	}
	return errs.Err()
}

// ValidateActivityInput validates an activity upsert
func ValidateActivityInput(in *models.ActivityInput) error {
	var errs Errors
	if in.Date == "" {
		errs = append(errs, models.ValidationError{Field: "date", Message: "date is required"})
	} else if !IsDate(in.Date) {
		errs = append(errs, models.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD", Value: in.Date})
	}
	errs = required(errs, "mood", in.Mood)
	return errs.Err()
}

// ValidateActivityRange validates optional list bounds
func ValidateActivityRange(start, end string) error {
	var errs Errors
	if start != "" && !IsDate(start) {
		errs = append(errs, models.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD", Value: start})
	}
	if end != "" && !IsDate(end) {
		errs = append(errs, models.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD", Value: end})
	}
	if len(errs) == 0 && start != "" && end != "" && start > end {
		errs = append(errs, models.ValidationError{Field: "start_date", Message: "start_date must not be after end_date"})
	}
	return errs.Err()
}

func friendLinkFields(errs Errors, name, link string) Errors {
	errs = required(errs, "name", name)
	if link == "" {
		errs = append(errs, models.ValidationError{Field: "url", Message: "url is required"})
	} else if !IsHTTPURL(link) {
		errs = append(errs, models.ValidationError{Field: "url", Message: "url must be an http(s) URL", Value: link})
	}
	return errs
}

func friendLinkStatus(errs Errors, status string) Errors {
	if status != models.LinkStatusApproved {
		errs = append(errs, models.ValidationError{
			Field:   "status",
			Message: "invalid status, must be: " + models.LinkStatusApproved,
			Value:   status,
		})
	}
	return errs
}

// ValidateFriendLinkInput validates an admin-created link; an empty status
// defaults to approved
func ValidateFriendLinkInput(in *models.FriendLinkInput) error {
	errs := friendLinkFields(nil, in.Name, in.URL)
	if in.Status != "" {
		errs = friendLinkStatus(errs, in.Status)
	}
	return errs.Err()
}

// ValidateFriendLinkPatch validates a partial link update
func ValidateFriendLinkPatch(p *models.FriendLinkPatch) error {
	errs := ValidateID(p.ID)
	if p.Name != nil {
		errs = required(errs, "name", *p.Name)
	}
	if p.URL != nil && !IsHTTPURL(*p.URL) {
		errs = append(errs, models.ValidationError{Field: "url", Message: "url must be an http(s) URL", Value: *p.URL})
	}
	if p.Status != nil {
		errs = friendLinkStatus(errs, *p.Status)
	}
	return errs.Err()
}

// ValidateFriendLinkRequest validates a public submission
func ValidateFriendLinkRequest(in *models.FriendLinkRequestInput) error {
	errs := friendLinkFields(nil, in.Name, in.URL)
	if in.Email != "" && !IsEmail(in.Email) {
		errs = append(errs, models.ValidationError{Field: "email", Message: "invalid email format", Value: in.Email})
	}
	return errs.Err()
}

// ValidateMessageInput validates a guestbook post
func ValidateMessageInput(in *models.MessageInput) error {
	errs := required(nil, "content", in.Content)
	if in.Email != "" && !IsEmail(in.Email) {
		errs = append(errs, models.ValidationError{Field: "email", Message: "invalid email format", Value: in.Email})
	}
	return errs.Err()
}

// ValidateID checks an {id} body value
func ValidateID(id int64) Errors {
	if id <= 0 {
		return Errors{{Field: "id", Message: "id is required"}}
	}
	return nil
}

// ParseID parses a positive path or query ID
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Errors{{Field: "id", Message: "invalid id", Value: raw}}
	}
	return id, nil
}

// ClampPage turns raw query values into a usable page. Missing, zero,
// negative and non-numeric values fall back to the defaults; sizes above
// the maximum are capped.
func ClampPage(rawPage, rawSize string) models.Page {
	page := atoiOr(rawPage, models.DefaultPage)
	if page < 1 {
		page = models.DefaultPage
	}
	size := atoiOr(rawSize, models.DefaultPageSize)
	if size < 1 {
		size = models.DefaultPageSize
	}
	if size > models.MaxPageSize {
		size = models.MaxPageSize
	}
	return models.Page{Page: page, PageSize: size}
}

// ClampActivityLimit applies the activity list default and cap
func ClampActivityLimit(raw string) int {
	limit := atoiOr(raw, DefaultActivityLimit)
	if limit < 1 {
		return DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		return MaxActivityLimit
	}
	return limit
}

func atoiOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}
