package users

import (
	"context"
	"database/sql"
	"errors"

	"mindful/internal/database"
)

const (
	insertUserSQL = `
		INSERT INTO users (full_name, email, password, focus_area)
		VALUES (?, ?, ?, ?)`

	selectUserByIDSQL = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = ?`

	selectUserByEmailSQL = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = ?`

	selectAllUsersSQL = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id`

	updateUserSQL = `
		UPDATE users
		SET full_name = ?, email = ?, password = ?, focus_area = ?
		WHERE id = ?`

	deleteUserSQL = `DELETE FROM users WHERE id = ?`
)

// Repository handles all database operations for users
type Repository struct {
	db database.Provider
}

// NewRepository creates a new users repository
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db}
}

// Insert stores u and returns the generated id, or database.NoGeneratedID.
func (r *Repository) Insert(ctx context.Context, u *User) (int64, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	return database.InsertReturningID(ctx, db, insertUserSQL, bindUser(u)...)
}

// FindByID returns nil, nil when no user has the id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, selectUserByIDSQL, id)
}

// FindByEmail returns nil, nil when no user has the email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, selectUserByEmailSQL, email)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var row userRow
	err = db.GetContext(ctx, &row, db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u := row.toModel()
	return &u, nil
}

// FindAll returns every user ordered by id.
func (r *Repository) FindAll(ctx context.Context) ([]User, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []userRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(selectAllUsersSQL)); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

// Update overwrites every mutable column of the user with u.ID.
func (r *Repository) Update(ctx context.Context, u *User) (bool, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return false, err
	}
	args := append(bindUser(u), u.ID)
	return database.ExecSingleRow(ctx, db, updateUserSQL, args...)
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	db, err := r.db.Conn(ctx)
	if err != nil {
		return false, err
	}
	return database.ExecSingleRow(ctx, db, deleteUserSQL, id)
}
