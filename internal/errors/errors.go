package errors

import (
	"errors"
	"net/http"
)

// Error is an operational error carrying the HTTP status it maps to at the
// boundary. Anything that is not an *Error surfaces as a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// StatusOf returns the boundary status code for err.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

var (
	ErrMissingCredentials = New(http.StatusBadRequest, "please provide email and password")
	ErrPasswordMismatch   = New(http.StatusBadRequest, "passwords do not match")
	ErrPasswordTooShort   = New(http.StatusBadRequest, "password must be at least 8 characters")
	ErrMissingFields      = New(http.StatusBadRequest, "please provide name, email, password and password confirmation")
	ErrEmailAlreadyInUse  = New(http.StatusBadRequest, "email already in use")
	ErrResetTokenInvalid  = New(http.StatusBadRequest, "token is invalid or has expired")

	ErrInvalidCredentials = New(http.StatusUnauthorized, "incorrect email or password")
	ErrWrongPassword      = New(http.StatusUnauthorized, "your current password is wrong")
	ErrNotLoggedIn        = New(http.StatusUnauthorized, "you are not logged in, please log in to get access")
	ErrInvalidToken       = New(http.StatusUnauthorized, "invalid or expired token")
	ErrUserGone           = New(http.StatusUnauthorized, "the user belonging to this token no longer exists")
	ErrPasswordChanged    = New(http.StatusUnauthorized, "password was recently changed, please log in again")

	ErrForbidden = New(http.StatusForbidden, "you do not have permission to perform this action")

	ErrUserNotFound = New(http.StatusNotFound, "there is no user with that email address")

	ErrEmailDispatch = New(http.StatusInternalServerError, "there was an error sending the email, try again later")
)
