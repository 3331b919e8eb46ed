package mocks

import (
	"context"
	"sync"

	"github.com/personal-blog-api/internal/mail"
)

// MockMailer records sent messages instead of delivering them
type MockMailer struct {
	mu      sync.Mutex
	Sent    []mail.Message
	SendErr error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// Last returns the most recent message, or the zero Message
func (m *MockMailer) Last() mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return mail.Message{}
	}
	return m.Sent[len(m.Sent)-1]
}
