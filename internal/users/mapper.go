package users

import "database/sql"

const userColumns = "id, full_name, email, password, focus_area"

type userRow struct {
	ID        int64          `db:"id"`
	FullName  sql.NullString `db:"full_name"`
	Email     sql.NullString `db:"email"`
	Password  sql.NullString `db:"password"`
	FocusArea sql.NullString `db:"focus_area"`
}

func (r userRow) toModel() User {
	return User{
		ID:        r.ID,
		FullName:  r.FullName.String,
		Email:     r.Email.String,
		Password:  r.Password.String,
		FocusArea: r.FocusArea.String,
	}
}

// bindUser returns full_name, email, password, focus_area in that order.
func bindUser(u *User) []any {
	return []any{
		u.FullName,
		u.Email,
		u.Password,
		sql.NullString{String: u.FocusArea, Valid: u.FocusArea != ""},
	}
}
