package service

import "errors"

var (
	// ErrValidation indicates missing or malformed input the caller can fix.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials indicates a failed login. It never distinguishes
	// an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionInvalid indicates a missing, unknown, or expired session token.
	ErrSessionInvalid = errors.New("invalid or expired session")
	// ErrForbidden indicates a valid identity without the required role.
	ErrForbidden = errors.New("insufficient role")
	// ErrUserAlreadyExists is returned when creating a user with a taken username.
	ErrUserAlreadyExists = errors.New("user already exists")
)
