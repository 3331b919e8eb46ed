package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestVerificationCode(t *testing.T) {
	msg, err := VerificationCode("My Blog", "me@example.com", "482913", 300*time.Second)
	if err != nil {
		t.Fatalf("VerificationCode failed: %v", err)
	}

	if len(msg.To) != 1 || msg.To[0] != "me@example.com" {
		t.Errorf("Unexpected recipients %v", msg.To)
	}
	if !strings.Contains(msg.HTML, "482913") {
		t.Error("Body should contain the code")
	}
	if !strings.Contains(msg.HTML, "5 minutes") {
		t.Error("Body should state the validity window")
	}
	if !strings.Contains(msg.Subject, "My Blog") {
		t.Errorf("Unexpected subject %q", msg.Subject)
	}
}

func TestActivityReminder_EscapesValues(t *testing.T) {
	msg, err := ActivityReminder("Blog", "admin@example.com",
		"https://blog.example/activity/submit_from_email", `k"<x>`, "2024-03-01")
	if err != nil {
		t.Fatalf("ActivityReminder failed: %v", err)
	}

	if !strings.Contains(msg.HTML, `action="https://blog.example/activity/submit_from_email"`) {
		t.Error("Form should post to the submit endpoint")
	}
	if strings.Contains(msg.HTML, `k"<x>`) {
		t.Error("Key should be HTML-escaped")
	}
	for _, mood := range Moods {
		if !strings.Contains(msg.HTML, `value="`+mood+`"`) {
			t.Errorf("Missing mood option %s", mood)
		}
	}
}

func TestBuild(t *testing.T) {
	raw := string(Build("blog@example.com", Message{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Grüße",
		HTML:    "<p>hi</p>\n<p>there</p>",
	}))

	for _, want := range []string{
		"From: blog@example.com\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: =?utf-8?q?",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"\r\n\r\n<p>hi</p>\r\n<p>there</p>",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("Message missing %q:\n%s", want, raw)
		}
	}
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer(zerolog.Nop())
	if err := m.Send(context.Background(), Message{To: []string{"x@example.com"}}); err != nil {
		t.Errorf("LogMailer should not fail: %v", err)
	}
}
