package sessions

import (
	"database/sql"
	"time"

	"mindful/internal/activity"
)

const sessionColumns = "id, user_id, title, description, difficulty, category, scheduled_at, duration_minutes, reflection_notes"

// sessionRow mirrors one mindfulness_sessions row.
type sessionRow struct {
	ID              int64          `db:"id"`
	UserID          int64          `db:"user_id"`
	Title           sql.NullString `db:"title"`
	Description     sql.NullString `db:"description"`
	Difficulty      sql.NullString `db:"difficulty"`
	Category        sql.NullString `db:"category"`
	ScheduledAt     sql.NullTime   `db:"scheduled_at"`
	DurationMinutes sql.NullInt32  `db:"duration_minutes"`
	ReflectionNotes sql.NullString `db:"reflection_notes"`
}

// toModel converts the row. A NULL scheduled_at becomes now.
func (r sessionRow) toModel(now time.Time) Session {
	scheduledAt := now
	if r.ScheduledAt.Valid {
		scheduledAt = r.ScheduledAt.Time
	}

	return Session{
		Activity: activity.Activity{
			ID:          r.ID,
			Title:       r.Title.String,
			Description: r.Description.String,
			Kind:        activity.KindSession,
		},
		UserID:          r.UserID,
		Difficulty:      r.Difficulty.String,
		Category:        r.Category.String,
		ScheduledAt:     scheduledAt,
		DurationMinutes: int(r.DurationMinutes.Int32),
		ReflectionNotes: r.ReflectionNotes.String,
	}
}

// bindSession returns the insert arguments in column order:
// user_id, title, description, difficulty, category, scheduled_at, duration_minutes, reflection_notes.
func bindSession(s *Session) []any {
	return []any{
		s.UserID,
		s.Title,
		nullString(s.Description),
		nullString(s.Difficulty),
		nullString(s.Category),
		s.ScheduledAt,
		s.DurationMinutes,
		nullString(s.ReflectionNotes),
	}
}

// nullString stores absent optional text as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
