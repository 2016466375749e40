package sessions

import (
	"time"

	"mindful/internal/activity"
)

// Session is a mindfulness session a user has scheduled.
type Session struct {
	activity.Activity
	UserID          int64     `json:"userId"`
	Difficulty      string    `json:"difficulty,omitempty"`
	Category        string    `json:"category,omitempty"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	ReflectionNotes string    `json:"reflectionNotes,omitempty"`
}

// New returns an empty Session with its Kind set.
func New() *Session {
	return &Session{Activity: activity.Activity{Kind: activity.KindSession}}
}

func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Summary is the list projection served by GET /api/sessions.
type Summary struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (s Session) Summary() Summary {
	return Summary{
		ID:              s.ID,
		Title:           s.Title,
		Category:        s.Category,
		DurationMinutes: s.DurationMinutes,
	}
}

// ScheduledResponse is returned by POST /api/sessions
type ScheduledResponse struct {
	Message   string `json:"message"`
	SessionID int64  `json:"sessionId"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
