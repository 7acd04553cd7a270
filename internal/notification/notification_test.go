package notification

import (
	"errors"
	"os"
	"testing"

	"github.com/petpost/petpost/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	_ = logger.Init(os.DevNull)
	code := m.Run()
	logger.Reset()
	os.Exit(code)
}

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
	}{title, message})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{
			name:    "successful notification",
			title:   "Test Title",
			message: "Test Message",
		},
		{
			name:        "notification error",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     errors.New("notification failed"),
			expectError: true,
		},
		{
			name:    "unicode content",
			title:   "Publicação",
			message: "Cão perdido 🐶",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != tt.title || mock.calls[0].message != tt.message {
				t.Errorf("call = %+v, want %q/%q", mock.calls[0], tt.title, tt.message)
			}
		})
	}
}

func TestPublicationResult(t *testing.T) {
	tests := []struct {
		title     string
		wantTitle string
	}{
		{"Publication created", "petpost: Publication created"},
		{"", "petpost"},
	}

	for _, tt := range tests {
		mock := &mockNotification{}
		SetNotifier(mock.notify)

		if err := PublicationResult(tt.title, "msg"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(mock.calls) != 1 || mock.calls[0].title != tt.wantTitle {
			t.Errorf("calls = %+v, want title %q", mock.calls, tt.wantTitle)
		}
		ResetNotifier()
	}
}
