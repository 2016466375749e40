package users

import (
	"strings"
	"unicode/utf16"

	"mindful/internal/apperr"
)

// Validation messages, returned to clients verbatim.
const (
	MsgPayloadRequired  = "User payload cannot be null"
	MsgFullNameRequired = "Full name is mandatory"
	MsgEmailInvalid     = "A valid email is required"
	MsgPasswordTooShort = "Password must contain at least 6 characters"
	MsgIDRequired       = "User id is required for update"
)

const minPasswordLength = 6

// Validate checks u in a fixed order and reports the first failure.
func Validate(u *User) error {
	if u == nil {
		return apperr.Validation(MsgPayloadRequired)
	}
	if strings.TrimSpace(u.FullName) == "" {
		return apperr.Validation(MsgFullNameRequired)
	}
	if !strings.Contains(u.Email, "@") {
		return apperr.Validation(MsgEmailInvalid)
	}
	if passwordLength(u.Password) < minPasswordLength {
		return apperr.Validation(MsgPasswordTooShort)
	}
	return nil
}

// ValidateForUpdate additionally requires an id, checked before anything else.
func ValidateForUpdate(u *User) error {
	if u == nil {
		return apperr.Validation(MsgPayloadRequired)
	}
	if u.ID <= 0 {
		return apperr.Validation(MsgIDRequired)
	}
	return Validate(u)
}

// passwordLength counts UTF-16 code units, so a character outside the Basic
// Multilingual Plane counts twice.
func passwordLength(p string) int {
	return len(utf16.Encode([]rune(p)))
}
