package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNoteNotFound       = errors.New("note not found")
	ErrValidation         = errors.New("validation failed")
	ErrInternal           = errors.New("internal server error")
)
