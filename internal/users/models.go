package users

import "mindful/internal/sessions"

// User is a registered learner.
type User struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	FocusArea string `json:"focusArea,omitempty"`

	// CompletedSessions is filled for detail responses only and never persisted.
	CompletedSessions []sessions.Session `json:"completedSessions,omitempty"`
}

// AddCompletedSession appends s to the in-memory aggregation.
func (u *User) AddCompletedSession(s sessions.Session) {
	u.CompletedSessions = append(u.CompletedSessions, s)
}

// RegisteredResponse is returned by POST /api/register
type RegisteredResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// CacheEntry is how a User is kept in the lookup cache. Unlike User it
// round-trips every column through JSON.
type CacheEntry struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FocusArea string `json:"focusArea,omitempty"`
}

func newCacheEntry(u *User) CacheEntry {
	return CacheEntry{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Password:  u.Password,
		FocusArea: u.FocusArea,
	}
}

func (e CacheEntry) user() *User {
	return &User{
		ID:        e.ID,
		FullName:  e.FullName,
		Email:     e.Email,
		Password:  e.Password,
		FocusArea: e.FocusArea,
	}
}
