// Package service contains the business logic layer of the application.
//
// The layering mirrors the rest of the codebase:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → enforces domain rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services accept primitives and context, return domain models and typed
// errors from the apperror package, and know nothing about HTTP. They receive
// repository interfaces (not concrete sqlite types), so tests inject
// map-backed mocks instead of a real database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smileksey/quotes-service/internal/apperror"
	"github.com/smileksey/quotes-service/internal/model"
	"github.com/smileksey/quotes-service/internal/repository"
)

// UserService handles registration and lookup of users.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// Register creates a new user, stamping the registration timestamp.
// Fails with apperror.ErrConflict if the email is already taken.
//
// The pre-check below catches the common case with a friendly error; the
// UNIQUE index on email decides races between concurrent registrations, and
// the repository translates that violation to the same conflict error.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.UserAlreadyExists(email)
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("registering user %s: %w", email, err)
	}

	user := &model.User{
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  password,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to register user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user %s: %w", email, err)
	}

	s.logger.Info("user registered",
		slog.Int64("id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// FindByEmail returns the user with the given email, or apperror.ErrNotFound.
// Absence is an expected outcome here, not a failure — callers branch on
// errors.Is rather than treating it as an error to report.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}
