package sessions

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"mindful/internal/apperr"
	"mindful/internal/cache"
)

// Store is the persistence the service needs. *Repository implements it.
type Store interface {
	Insert(ctx context.Context, s *Session) (int64, error)
	FindByID(ctx context.Context, id int64) (*Session, error)
	FindByUser(ctx context.Context, userID int64) ([]Session, error)
	UpdateReflection(ctx context.Context, id int64, notes string, durationMinutes int) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service defines the interface for session business logic
type Service interface {
	ScheduleSession(ctx context.Context, s *Session) (int64, error)
	SessionsForUser(ctx context.Context, userID int64) ([]Session, error)
	FindByID(ctx context.Context, id int64) (*Session, error)
	UpdateReflection(ctx context.Context, id int64, notes string, durationMinutes int) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type service struct {
	store  Store
	cache  cache.Cache[Session]
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new sessions service. A nil cache disables caching.
func NewService(store Store, c cache.Cache[Session], logger *slog.Logger) Service {
	if c == nil {
		c = cache.Noop[Session]{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		store:  store,
		cache:  c,
		logger: logger,
		now:    time.Now,
	}
}

func (s *service) ScheduleSession(ctx context.Context, sess *Session) (int64, error) {
	if err := Validate(sess, s.now()); err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, sess)
	if err != nil {
		return 0, s.failed(ctx, "Failed to schedule session", err, "user_id", sess.UserID)
	}
	if id > 0 {
		sess.ID = id
	}

	s.logger.InfoContext(ctx, "Session scheduled", "session_id", id, "user_id", sess.UserID)
	return id, nil
}

func (s *service) SessionsForUser(ctx context.Context, userID int64) ([]Session, error) {
	sessions, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, s.failed(ctx, "Failed to fetch sessions", err, "user_id", userID)
	}
	return sessions, nil
}

// FindByID reads through the lookup cache. Absent sessions are not cached.
func (s *service) FindByID(ctx context.Context, id int64) (*Session, error) {
	key := sessionKey(id)
	if cached, ok := s.cache.Get(ctx, key); ok {
		s.logger.DebugContext(ctx, "Cache hit for session", "session_id", id)
		return &cached, nil
	}

	sess, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.failed(ctx, "Failed to fetch session", err, "session_id", id)
	}
	if sess != nil {
		s.cache.Set(ctx, key, *sess)
	}
	return sess, nil
}

func (s *service) UpdateReflection(ctx context.Context, id int64, notes string, durationMinutes int) (bool, error) {
	if err := ValidateReflection(id, durationMinutes); err != nil {
		return false, err
	}

	updated, err := s.store.UpdateReflection(ctx, id, notes, durationMinutes)
	if err != nil {
		return false, s.failed(ctx, "Failed to update session", err, "session_id", id)
	}

	s.invalidateSessionCache(ctx, id)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, s.failed(ctx, "Failed to delete session", err, "session_id", id)
	}

	s.invalidateSessionCache(ctx, id)
	return deleted, nil
}

// failed logs the storage cause and wraps it as a DataAccessError.
func (s *service) failed(ctx context.Context, msg string, err error, attrs ...any) error {
	s.logger.ErrorContext(ctx, msg, append(attrs, "error", err)...)
	return apperr.DataAccess(msg, err)
}

func (s *service) invalidateSessionCache(ctx context.Context, id int64) {
	s.cache.Delete(ctx, sessionKey(id))
}

func sessionKey(id int64) string {
	return "session:" + strconv.FormatInt(id, 10)
}
