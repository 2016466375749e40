package sessions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mindful/internal/database"
)

const (
	insertSessionSQL = `
		INSERT INTO mindfulness_sessions (user_id, title, description, difficulty, category, scheduled_at, duration_minutes, reflection_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectSessionByIDSQL = `
		SELECT ` + sessionColumns + `
		FROM mindfulness_sessions
		WHERE id = ?`

	selectSessionsByUserSQL = `
		SELECT ` + sessionColumns + `
		FROM mindfulness_sessions
		WHERE user_id = ?
		ORDER BY scheduled_at DESC`

	updateReflectionSQL = `
		UPDATE mindfulness_sessions
		SET reflection_notes = ?, duration_minutes = ?
		WHERE id = ?`

	deleteSessionSQL = `DELETE FROM mindfulness_sessions WHERE id = ?`
)

// Repository handles all database operations for sessions.
// Errors are returned unwrapped; the service decides how to report them.
type Repository struct {
	db  database.Provider
	now func() time.Time
}

// NewRepository creates a new sessions repository
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Insert stores s and returns the generated id, or database.NoGeneratedID.
func (r *Repository) Insert(ctx context.Context, s *Session) (int64, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	return database.InsertReturningID(ctx, db, insertSessionSQL, bindSession(s)...)
}

// FindByID returns nil, nil when no session has the id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Session, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var row sessionRow
	err = db.GetContext(ctx, &row, db.Rebind(selectSessionByIDSQL), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s := row.toModel(r.now())
	return &s, nil
}

// FindByUser returns the user's sessions, most recently scheduled first.
func (r *Repository) FindByUser(ctx context.Context, userID int64) ([]Session, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []sessionRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(selectSessionsByUserSQL), userID); err != nil {
		return nil, err
	}

	now := r.now()
	sessions := make([]Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.toModel(now))
	}
	return sessions, nil
}

// UpdateReflection changes only reflection_notes and duration_minutes.
func (r *Repository) UpdateReflection(ctx context.Context, id int64, notes string, durationMinutes int) (bool, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return false, err
	}
	return database.ExecSingleRow(ctx, db, updateReflectionSQL, nullString(notes), durationMinutes, id)
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return false, err
	}
	return database.ExecSingleRow(ctx, db, deleteSessionSQL, id)
}
