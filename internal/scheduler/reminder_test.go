package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/mail"
	"github.com/rs/zerolog"
)

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestReminder_Send(t *testing.T) {
	mailer := &fakeMailer{}
	r := NewReminder(mailer, config.ReminderConfig{
		Schedule:   "0 21 * * *",
		AdminEmail: "admin@example.com",
		PublicURL:  "https://blog.example/",
		SubmitKey:  "s3cret",
	}, "Blog", zerolog.Nop())
	r.now = func() time.Time { return time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC) }

	if err := r.Send(context.Background()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To[0] != "admin@example.com" {
		t.Errorf("Unexpected recipient %v", msg.To)
	}
	for _, want := range []string{
		`action="https://blog.example/activity/submit_from_email"`,
		`value="2024-06-01"`,
		`value="s3cret"`,
	} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("Reminder body missing %s", want)
		}
	}
}

func TestReminder_SendFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	r := NewReminder(mailer, config.ReminderConfig{Schedule: "@daily", AdminEmail: "a@example.com"}, "Blog", zerolog.Nop())

	if err := r.Send(context.Background()); err == nil {
		t.Error("Expected delivery error")
	}
}

func TestReminder_StartStop(t *testing.T) {
	r := NewReminder(&fakeMailer{}, config.ReminderConfig{Schedule: "0 21 * * *", AdminEmail: "a@example.com"}, "Blog", zerolog.Nop())

	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if r.NextRun().IsZero() {
		t.Error("Expected a scheduled next run")
	}
	r.Stop()
}

func TestReminder_InvalidSchedule(t *testing.T) {
	r := NewReminder(&fakeMailer{}, config.ReminderConfig{Schedule: "not a cron", AdminEmail: "a@example.com"}, "Blog", zerolog.Nop())
	if err := r.Start(); err == nil {
		t.Error("Expected schedule parse error")
	}
}

func TestReminder_Disabled(t *testing.T) {
	r := NewReminder(&fakeMailer{}, config.ReminderConfig{Schedule: "0 21 * * *"}, "Blog", zerolog.Nop())
	if r.Enabled() {
		t.Error("Reminder without admin email should be disabled")
	}
	if err := r.Start(); err != nil {
		t.Errorf("Disabled Start should be a no-op: %v", err)
	}
	r.Stop()
}
