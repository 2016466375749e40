package users

import (
	"context"
	"log/slog"
	"strconv"

	"mindful/internal/apperr"
	"mindful/internal/cache"
)

// Store is the persistence the service needs. *Repository implements it.
type Store interface {
	Insert(ctx context.Context, u *User) (int64, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service defines the interface for user business logic
type Service interface {
	RegisterUser(ctx context.Context, u *User) (int64, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, u *User) (bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

type service struct {
	store  Store
	cache  cache.Cache[CacheEntry]
	logger *slog.Logger
}

// NewService creates a new users service. A nil cache disables caching.
func NewService(store Store, c cache.Cache[CacheEntry], logger *slog.Logger) Service {
	if c == nil {
		c = cache.Noop[CacheEntry]{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, cache: c, logger: logger}
}

func (s *service) RegisterUser(ctx context.Context, u *User) (int64, error) {
	if err := Validate(u); err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, u)
	if err != nil {
		return 0, s.failed(ctx, "Failed to create user", err, "email", u.Email)
	}
	if id > 0 {
		u.ID = id
	}

	s.logger.InfoContext(ctx, "User registered", "user_id", id)
	return id, nil
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, s.failed(ctx, "Failed to list users", err)
	}
	return users, nil
}

// GetUser reads through the lookup cache. Absent users are not cached.
func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	if cached, ok := s.cache.Get(ctx, idKey(id)); ok {
		s.logger.DebugContext(ctx, "Cache hit for user", "user_id", id)
		return cached.user(), nil
	}

	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.failed(ctx, "Failed to fetch user", err, "user_id", id)
	}
	s.remember(ctx, u)
	return u, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if cached, ok := s.cache.Get(ctx, emailKey(email)); ok {
		return cached.user(), nil
	}

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.failed(ctx, "Failed to fetch user", err)
	}
	s.remember(ctx, u)
	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, u *User) (bool, error) {
	if err := ValidateForUpdate(u); err != nil {
		return false, err
	}

	previous := s.currentEmail(ctx, u.ID)

	updated, err := s.store.Update(ctx, u)
	if err != nil {
		return false, s.failed(ctx, "Failed to update user", err, "user_id", u.ID)
	}

	s.invalidateUserCache(ctx, u.ID, previous, u.Email)
	return updated, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) (bool, error) {
	previous := s.currentEmail(ctx, id)

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, s.failed(ctx, "Failed to delete user", err, "user_id", id)
	}

	s.invalidateUserCache(ctx, id, previous)
	return deleted, nil
}

func (s *service) failed(ctx context.Context, msg string, err error, attrs ...any) error {
	s.logger.ErrorContext(ctx, msg, append(attrs, "error", err)...)
	return apperr.DataAccess(msg, err)
}

func (s *service) remember(ctx context.Context, u *User) {
	if u == nil {
		return
	}
	entry := newCacheEntry(u)
	s.cache.Set(ctx, idKey(u.ID), entry)
	s.cache.Set(ctx, emailKey(u.Email), entry)
}

// currentEmail returns the email the user is stored under before a write.
// The id and email entries are evicted independently, so a cache miss falls
// back to the store. An unknown user or a failed read yields "".
func (s *service) currentEmail(ctx context.Context, id int64) string {
	if cached, ok := s.cache.Get(ctx, idKey(id)); ok {
		return cached.Email
	}

	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read user before cache invalidation", "user_id", id, "error", err)
		return ""
	}
	if u == nil {
		return ""
	}
	return u.Email
}

// invalidateUserCache drops the id entry and the email keys passed in.
func (s *service) invalidateUserCache(ctx context.Context, id int64, emails ...string) {
	keys := []string{idKey(id)}
	for _, e := range emails {
		if e != "" {
			keys = append(keys, emailKey(e))
		}
	}
	s.cache.Delete(ctx, keys...)
}

func idKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}

func emailKey(email string) string {
	return "user:email:" + email
}
