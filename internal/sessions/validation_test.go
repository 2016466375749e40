package sessions

import (
	"strings"
	"testing"
	"time"

	"mindful/internal/apperr"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)

func validSession() *Session {
	s := New()
	s.UserID = 5
	s.Title = "Breath"
	s.ScheduledAt = fixedNow.Add(24 * time.Hour)
	s.DurationMinutes = 10
	return s
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Session) *Session
		want   string
	}{
		{"valid", func(s *Session) *Session { return s }, ""},
		{"nil payload", func(s *Session) *Session { return nil }, MsgPayloadRequired},
		{"zero user", func(s *Session) *Session { s.UserID = 0; return s }, MsgUserRequired},
		{"negative user", func(s *Session) *Session { s.UserID = -3; return s }, MsgUserRequired},
		{"empty title", func(s *Session) *Session { s.Title = ""; return s }, MsgTitleRequired},
		{"blank title", func(s *Session) *Session { s.Title = " \t "; return s }, MsgTitleRequired},
		{"missing date", func(s *Session) *Session { s.ScheduledAt = time.Time{}; return s }, MsgDateIncorrect},
		{"two days ago", func(s *Session) *Session { s.ScheduledAt = fixedNow.Add(-48 * time.Hour); return s }, MsgDateIncorrect},
		{"twelve hours ago", func(s *Session) *Session { s.ScheduledAt = fixedNow.Add(-12 * time.Hour); return s }, ""},
		{"exactly one day ago", func(s *Session) *Session { s.ScheduledAt = fixedNow.Add(-24 * time.Hour); return s }, ""},
		{"zero duration", func(s *Session) *Session { s.DurationMinutes = 0; return s }, MsgDurationPositive},
		{"negative duration", func(s *Session) *Session { s.DurationMinutes = -5; return s }, MsgDurationPositive},
		{"first failure wins", func(s *Session) *Session { s.UserID = 0; s.Title = ""; s.DurationMinutes = 0; return s }, MsgUserRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(validSession()), fixedNow)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !apperr.IsValidation(err) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if err.Error() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestValidate_DoesNotCheckCategory(t *testing.T) {
	s := validSession()
	s.Category = strings.Repeat("x", 500)
	if err := Validate(s, fixedNow); err != nil {
		t.Errorf("Category should not be validated, got %v", err)
	}
}

func TestValidateReflection(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		duration int
		want     string
	}{
		{"valid", 7, 25, ""},
		{"missing id", 0, 25, MsgIDRequired},
		{"negative id", -1, 25, MsgIDRequired},
		{"zero duration", 7, 0, MsgDurationAboveZero},
		{"id checked first", 0, 0, MsgIDRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReflection(tt.id, tt.duration)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.want {
				t.Errorf("Expected %q, got %v", tt.want, err)
			}
		})
	}
}
