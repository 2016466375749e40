package sessions

import (
	"strings"
	"time"

	"mindful/internal/apperr"
)

// Validation messages, returned to clients verbatim.
const (
	MsgPayloadRequired   = "Session payload cannot be null"
	MsgUserRequired      = "Session must belong to a user"
	MsgTitleRequired     = "Session title is required"
	MsgDateIncorrect     = "Session date looks incorrect"
	MsgDurationPositive  = "Duration must be positive"
	MsgIDRequired        = "Session id is required"
	MsgDurationAboveZero = "Duration must be greater than zero"
)

// backdateWindow is how far in the past a session may still be scheduled.
const backdateWindow = 24 * time.Hour

// Validate checks s in a fixed order and reports the first failure.
func Validate(s *Session, now time.Time) error {
	if s == nil {
		return apperr.Validation(MsgPayloadRequired)
	}
	if s.UserID <= 0 {
		return apperr.Validation(MsgUserRequired)
	}
	if strings.TrimSpace(s.Title) == "" {
		return apperr.Validation(MsgTitleRequired)
	}
	if s.ScheduledAt.IsZero() || s.ScheduledAt.Before(now.Add(-backdateWindow)) {
		return apperr.Validation(MsgDateIncorrect)
	}
	if s.DurationMinutes <= 0 {
		return apperr.Validation(MsgDurationPositive)
	}
	return nil
}

func ValidateReflection(id int64, durationMinutes int) error {
	if id <= 0 {
		return apperr.Validation(MsgIDRequired)
	}
	if durationMinutes <= 0 {
		return apperr.Validation(MsgDurationAboveZero)
	}
	return nil
}
