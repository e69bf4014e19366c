// Package validation contains the request validators invoked before any
// mutating domain-service call.
//
// Each request payload variant has its own validator; the handler serving an
// endpoint knows which one to call, so no runtime type inspection is needed.
// Checks run in a fixed order and every failure is recorded as a field-scoped
// error; the accumulated failures for one request are merged into a single
// human-readable message.
package validation

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/smileksey/quotes-service/internal/apperror"
	"github.com/smileksey/quotes-service/internal/model"
)

const (
	MinNameLength     = 2
	MinPasswordLength = 5
	MaxPasswordLength = 20
)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string
	Message string
}

// Errors accumulates field errors in the order the fields were checked.
type Errors []FieldError

// Message merges all field errors into one message of the form
//
//	Field: 'content' - Content of a quote cannot be empty; Field: 'email' - Email is not valid;
//
// repeated per failing field, preserving check order.
func (e Errors) Message() string {
	var b strings.Builder
	for _, fe := range e {
		fmt.Fprintf(&b, "Field: '%s' - %s; ", fe.Field, fe.Message)
	}
	return b.String()
}

// UserFinder is the slice of the user service the validators need: a lookup
// that returns apperror.ErrNotFound when no user has the given email.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// QuoteValidator validates quote submission payloads.
type QuoteValidator struct {
	users UserFinder
}

func NewQuoteValidator(users UserFinder) *QuoteValidator {
	return &QuoteValidator{users: users}
}

// ValidateSubmission checks a quote submission: non-empty content, a
// well-formed email, a non-empty password, and that the email belongs to an
// already-registered user. The returned error is non-nil only for unexpected
// lookup failures — validation outcomes are carried in Errors.
func (v *QuoteValidator) ValidateSubmission(ctx context.Context, content, userEmail, userPassword string) (Errors, error) {
	var errs Errors

	if strings.TrimSpace(content) == "" {
		errs = append(errs, FieldError{"content", "Content of a quote cannot be empty"})
	}

	emailOK := validEmail(userEmail)
	if !emailOK {
		errs = append(errs, FieldError{"userEmail", "Email is not valid"})
	}

	if userPassword == "" {
		errs = append(errs, FieldError{"userPassword", "User's password cannot be empty"})
	}

	// Business check last, and only when the email is at least parseable.
	if emailOK {
		_, err := v.users.FindByEmail(ctx, userEmail)
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			errs = append(errs, FieldError{"userEmail", "User with this email is not found. Register first."})
		case err != nil:
			return nil, fmt.Errorf("validation: looking up user %s: %w", userEmail, err)
		}
	}

	return errs, nil
}

// ValidateUpdate checks a quote content-update payload: structural checks
// only. Whether the email identifies the quote's author is decided by the
// quote service, which distinguishes an unknown requester from a non-author —
// a distinction a registered-user lookup here would erase.
func (v *QuoteValidator) ValidateUpdate(content, userEmail, userPassword string) Errors {
	var errs Errors

	if strings.TrimSpace(content) == "" {
		errs = append(errs, FieldError{"content", "Content of a quote cannot be empty"})
	}
	if !validEmail(userEmail) {
		errs = append(errs, FieldError{"userEmail", "Email is not valid"})
	}
	if userPassword == "" {
		errs = append(errs, FieldError{"userPassword", "User's password cannot be empty"})
	}

	return errs
}

// UserValidator validates user registration payloads.
type UserValidator struct {
	users UserFinder
}

func NewUserValidator(users UserFinder) *UserValidator {
	return &UserValidator{users: users}
}

// ValidateRegistration checks a registration: name non-empty and at least two
// characters, email well-formed and not already registered, password
// non-empty with length between 5 and 20 inclusive.
func (v *UserValidator) ValidateRegistration(ctx context.Context, name, email, password string) (Errors, error) {
	var errs Errors

	switch {
	case strings.TrimSpace(name) == "":
		errs = append(errs, FieldError{"name", "User's name cannot be empty"})
	case utf8.RuneCountInString(name) < MinNameLength:
		errs = append(errs, FieldError{"name", fmt.Sprintf("Name must contain at least %d characters", MinNameLength)})
	}

	emailOK := validEmail(email)
	if !emailOK {
		errs = append(errs, FieldError{"email", "Email is not valid"})
	}

	switch n := utf8.RuneCountInString(password); {
	case password == "":
		errs = append(errs, FieldError{"password", "User's password cannot be empty"})
	case n < MinPasswordLength || n > MaxPasswordLength:
		errs = append(errs, FieldError{"password",
			fmt.Sprintf("Password's length must be between %d and %d symbols", MinPasswordLength, MaxPasswordLength)})
	}

	if emailOK {
		_, err := v.users.FindByEmail(ctx, email)
		switch {
		case err == nil:
			errs = append(errs, FieldError{"email", "User with this e-mail already exists"})
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, fmt.Errorf("validation: looking up user %s: %w", email, err)
		}
	}

	return errs, nil
}

// validEmail reports whether s is a bare, well-formed email address.
// mail.ParseAddress also accepts display-name forms like "Alice <a@b>";
// comparing the parsed address back against the input rejects those.
func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
