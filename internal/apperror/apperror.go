package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AppError struct {
	Err     error  // sentinel for errors.Is checks
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// QuoteNotFound is returned when no quote exists with the given id.
func QuoteNotFound(id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("quote with id %d is not found", id),
	}
}

// AuthorNotFound is returned when a quote submission or update references
// an email that belongs to no registered user.
func AuthorNotFound(email string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("user with email %s is not found", email),
		Field:   "userEmail",
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// UserAlreadyExists is returned when a registration reuses a taken email.
func UserAlreadyExists(email string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("user with email %s already exists", email),
		Field:   "email",
	}
}

// NotAuthor is returned when a quote update is attempted by someone other
// than the quote's original author.
func NotAuthor() *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: "only the original author may update this quote",
	}
}

// InvalidCredentials is returned when the supplied password does not match
// the stored password of the claimed user.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid credentials for this user",
	}
}
