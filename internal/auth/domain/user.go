package domain

import "time"

// Role enumerates the access levels a principal can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated principal. PasswordHash and the reset-token fields
// never leave the service layer; outward representations go through dto.UserOutput.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	// PasswordChangedAt is zero until the first password change.
	PasswordChangedAt time.Time

	// PasswordResetToken holds the sha256 hex digest of an outstanding reset
	// token. Both reset fields are set together and cleared together.
	PasswordResetToken   *string
	PasswordResetExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before a password change are rejected
// on the strength of this predicate alone; there is no revocation list.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}
