package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var codeTemplate = template.Must(template.New("code").Parse(`
<div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px;">
    <h2 style="color: #333; text-align: center;">Email verification</h2>
    <p style="color: #666; font-size: 14px;">Welcome to {{.Site}}! Your verification code is:</p>
    <div style="background-color: #fff; padding: 15px; margin: 20px 0; text-align: center; border-radius: 5px;">
      <span style="color: #007bff; font-size: 24px; font-weight: bold; letter-spacing: 5px;">{{.Code}}</span>
    </div>
    <p style="color: #666; font-size: 14px;">
      The code is valid for {{.Minutes}} minutes. Do not share it with anyone.<br>
      If you did not request it, ignore this email.
    </p>
    <p style="margin-top: 30px; text-align: center; color: #999; font-size: 12px;">This message was sent automatically, please do not reply.</p>
  </div>
</div>
`))

var reminderTemplate = template.Must(template.New("reminder").Parse(`
<div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
  <h2 style="color: #4a90e2;">How was {{.Date}}?</h2>
  <form method="POST" action="{{.Action}}">
    <input type="hidden" name="date" value="{{.Date}}">
    <input type="hidden" name="key" value="{{.Key}}">
    <p>
      <label>Mood</label><br>
      <select name="mood">
        {{range .Moods}}<option value="{{.}}">{{.}}</option>{{end}}
      </select>
    </p>
    <p>
      <label>What did you do today?</label><br>
      <textarea name="description" rows="4" style="width: 100%;"></textarea>
    </p>
    <button type="submit">Save</button>
  </form>
</div>
`))

// Moods offered in the reminder form
var Moods = []string{"happy", "calm", "productive", "tired", "sad"}

// VerificationCode builds the registration code email
func VerificationCode(site, to, code string, ttl time.Duration) (Message, error) {
	var buf bytes.Buffer
	err := codeTemplate.Execute(&buf, struct {
		Site    string
		Code    string
		Minutes int
	}{site, code, int(ttl.Minutes())})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render code email: %w", err)
	}

	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Verification code - %s", site),
		HTML:    buf.String(),
	}, nil
}

// ActivityReminder builds the daily activity form email posting to action
func ActivityReminder(site, to, action, key, date string) (Message, error) {
	var buf bytes.Buffer
	err := reminderTemplate.Execute(&buf, struct {
		Date   string
		Action string
		Key    string
		Moods  []string
	}{date, action, key, Moods})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render reminder email: %w", err)
	}

	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Daily check-in %s - %s", date, site),
		HTML:    buf.String(),
	}, nil
}
