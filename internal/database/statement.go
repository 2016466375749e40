package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// NoGeneratedID is returned by InsertReturningID when the engine reports no key.
const NoGeneratedID int64 = -1

// InsertReturningID runs an INSERT written with ? placeholders and returns the
// generated id. PostgreSQL reports it through RETURNING, MySQL through LastInsertId.
func InsertReturningID(ctx context.Context, db *sqlx.DB, query string, args ...any) (int64, error) {
	query = db.Rebind(query)

	if db.DriverName() == "mysql" {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil || id <= 0 {
			return NoGeneratedID, nil
		}
		return id, nil
	}

	var id int64
	err := db.QueryRowxContext(ctx, query+" RETURNING id", args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return NoGeneratedID, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ExecSingleRow runs an UPDATE or DELETE and reports whether exactly one row changed.
func ExecSingleRow(ctx context.Context, db *sqlx.DB, query string, args ...any) (bool, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
