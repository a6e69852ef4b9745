package services

import "sync"

// MockMailer is a mock implementation of Mailer for testing
type MockMailer struct {
	sent     []Email
	failWith error
	mu       sync.RWMutex
}

// NewMockMailer creates a new mock mailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send records the email, or fails with the configured error
func (m *MockMailer) Send(email Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, email)
	return nil
}

// FailWith makes every subsequent Send return err (nil restores success)
func (m *MockMailer) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// SentEmails returns a copy of everything delivered so far (for testing assertions)
func (m *MockMailer) SentEmails() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]Email, len(m.sent))
	copy(emails, m.sent)
	return emails
}

// Clear removes all recorded emails
func (m *MockMailer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}
