package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/smileksey/quotes-service/internal/apperror"
	"github.com/smileksey/quotes-service/internal/model"
)

// stubFinder implements UserFinder over a fixed set of known emails.
type stubFinder struct {
	known map[string]bool
	err   error // forced lookup error, when set
}

func (s *stubFinder) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.known[email] {
		return &model.User{Email: email}, nil
	}
	return nil, apperror.AuthorNotFound(email)
}

func knownUsers(emails ...string) *stubFinder {
	m := make(map[string]bool, len(emails))
	for _, e := range emails {
		m[e] = true
	}
	return &stubFinder{known: m}
}

func TestErrorsMessage_Format(t *testing.T) {
	errs := Errors{
		{"content", "Content of a quote cannot be empty"},
		{"userEmail", "Email is not valid"},
	}

	want := "Field: 'content' - Content of a quote cannot be empty; Field: 'userEmail' - Email is not valid; "
	if got := errs.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestErrorsMessage_Empty(t *testing.T) {
	if got := (Errors{}).Message(); got != "" {
		t.Errorf("empty Errors should produce empty message, got %q", got)
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		email      string
		password   string
		wantFields []string
	}{
		{
			name:     "valid submission",
			content:  "To be or not to be",
			email:    "alice@example.com",
			password: "secret1",
		},
		{
			name:       "empty content",
			content:    "",
			email:      "alice@example.com",
			password:   "secret1",
			wantFields: []string{"content"},
		},
		{
			name:       "whitespace-only content",
			content:    "   ",
			email:      "alice@example.com",
			password:   "secret1",
			wantFields: []string{"content"},
		},
		{
			name:       "malformed email",
			content:    "hello",
			email:      "not-an-email",
			password:   "secret1",
			wantFields: []string{"userEmail"},
		},
		{
			name:       "display-name email form rejected",
			content:    "hello",
			email:      "Alice <alice@example.com>",
			password:   "secret1",
			wantFields: []string{"userEmail"},
		},
		{
			name:       "unknown user",
			content:    "hello",
			email:      "ghost@example.com",
			password:   "secret1",
			wantFields: []string{"userEmail"},
		},
		{
			name:       "empty password",
			content:    "hello",
			email:      "alice@example.com",
			password:   "",
			wantFields: []string{"userPassword"},
		},
		{
			name:       "everything wrong accumulates in check order",
			content:    "",
			email:      "nope",
			password:   "",
			wantFields: []string{"content", "userEmail", "userPassword"},
		},
	}

	v := NewQuoteValidator(knownUsers("alice@example.com"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.ValidateSubmission(context.Background(), tt.content, tt.email, tt.password)
			if err != nil {
				t.Fatalf("ValidateSubmission() error = %v", err)
			}
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestValidateSubmission_UnknownUserMessage(t *testing.T) {
	v := NewQuoteValidator(knownUsers())

	errs, err := v.ValidateSubmission(context.Background(), "hi", "ghost@example.com", "secret1")
	if err != nil {
		t.Fatalf("ValidateSubmission() error = %v", err)
	}

	want := "Field: 'userEmail' - User with this email is not found. Register first.; "
	if got := errs.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestValidateSubmission_LookupFailurePropagates(t *testing.T) {
	v := NewQuoteValidator(&stubFinder{err: errors.New("db down")})

	_, err := v.ValidateSubmission(context.Background(), "hi", "alice@example.com", "secret1")
	if err == nil {
		t.Fatal("expected unexpected lookup error to propagate")
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewQuoteValidator(knownUsers())

	tests := []struct {
		name       string
		content    string
		email      string
		password   string
		wantFields []string
	}{
		{
			name:     "valid update payload",
			content:  "new content",
			email:    "anyone@example.com", // registration not checked here
			password: "secret1",
		},
		{
			name:       "empty content and bad email",
			content:    "",
			email:      "nope",
			password:   "secret1",
			wantFields: []string{"content", "userEmail"},
		},
		{
			name:       "empty password",
			content:    "ok",
			email:      "anyone@example.com",
			password:   "",
			wantFields: []string{"userPassword"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFields(t, v.ValidateUpdate(tt.content, tt.email, tt.password), tt.wantFields)
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		userName   string
		email      string
		password   string
		wantFields []string
	}{
		{
			name:     "valid registration",
			userName: "Alice",
			email:    "new@example.com",
			password: "secret1",
		},
		{
			name:       "empty name",
			userName:   "",
			email:      "new@example.com",
			password:   "secret1",
			wantFields: []string{"name"},
		},
		{
			name:       "single character name",
			userName:   "A",
			email:      "new@example.com",
			password:   "secret1",
			wantFields: []string{"name"},
		},
		{
			name:     "two character name passes",
			userName: "Al",
			email:    "new@example.com",
			password: "secret1",
		},
		{
			name:       "malformed email",
			userName:   "Alice",
			email:      "@@",
			password:   "secret1",
			wantFields: []string{"email"},
		},
		{
			name:       "duplicate email",
			userName:   "Alice",
			email:      "taken@example.com",
			password:   "secret1",
			wantFields: []string{"email"},
		},
		{
			name:       "empty password",
			userName:   "Alice",
			email:      "new@example.com",
			password:   "",
			wantFields: []string{"password"},
		},
		{
			name:       "password too short",
			userName:   "Alice",
			email:      "new@example.com",
			password:   "1234",
			wantFields: []string{"password"},
		},
		{
			name:     "password at lower bound passes",
			userName: "Alice",
			email:    "new@example.com",
			password: "12345",
		},
		{
			name:     "password at upper bound passes",
			userName: "Alice",
			email:    "new@example.com",
			password: "12345678901234567890",
		},
		{
			name:       "password too long",
			userName:   "Alice",
			email:      "new@example.com",
			password:   "123456789012345678901",
			wantFields: []string{"password"},
		},
		{
			name:       "all fields wrong accumulate in check order",
			userName:   "",
			email:      "bad",
			password:   "x",
			wantFields: []string{"name", "email", "password"},
		},
	}

	v := NewUserValidator(knownUsers("taken@example.com"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.ValidateRegistration(context.Background(), tt.userName, tt.email, tt.password)
			if err != nil {
				t.Fatalf("ValidateRegistration() error = %v", err)
			}
			assertFields(t, errs, tt.wantFields)
		})
	}
}

// assertFields checks that errs contains exactly the expected fields, in order.
func assertFields(t *testing.T, errs Errors, want []string) {
	t.Helper()
	if len(errs) != len(want) {
		t.Fatalf("got %d field errors (%v), want %d (%v)", len(errs), errs, len(want), want)
	}
	for i, field := range want {
		if errs[i].Field != field {
			t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
		}
	}
}
