package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/smileksey/quotes-service/internal/apperror"
	"github.com/smileksey/quotes-service/internal/model"
	"github.com/smileksey/quotes-service/internal/repository"
)

// TopListSize caps the top/worst rankings at ten quotes.
const TopListSize = 10

// QuoteService handles the business logic for quotes: creation, lookup,
// author-authenticated updates, voting, and deletion.
//
// It depends on the UserService (not the user repository directly) for
// author resolution, matching how authorship is a user-domain concern.
type QuoteService struct {
	repo   repository.QuoteRepository
	users  *UserService
	logger *slog.Logger
}

func NewQuoteService(repo repository.QuoteRepository, users *UserService, logger *slog.Logger) *QuoteService {
	return &QuoteService{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// Create persists a new quote owned by the user with the given email.
// Fails with apperror.ErrNotFound when the email is unknown and with
// apperror.ErrInvalidCredentials when the password does not match the
// stored one. New quotes start with zero votes and no update timestamp.
func (s *QuoteService) Create(ctx context.Context, content, authorEmail, authorPassword string) (*model.Quote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "Content of a quote cannot be empty")
	}

	author, err := s.users.FindByEmail(ctx, authorEmail)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.AuthorNotFound(authorEmail)
		}
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	// Plain-text comparison, matching the stored form.
	if author.Password != authorPassword {
		return nil, apperror.InvalidCredentials()
	}

	quote := &model.Quote{
		Content:   content,
		CreatedAt: time.Now(),
		UserID:    author.ID,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		s.logger.Error("failed to create quote",
			slog.String("authorEmail", authorEmail),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	quote.Author = &model.User{ID: author.ID, Name: author.Name, Email: author.Email}

	s.logger.Info("quote created",
		slog.Int64("id", quote.ID),
		slog.String("authorEmail", author.Email),
	)

	return quote, nil
}

// GetByID returns the quote with its owner's public fields resolved.
func (s *QuoteService) GetByID(ctx context.Context, id int64) (*model.Quote, error) {
	return s.repo.GetByID(ctx, id)
}

// GetRandom selects a quote uniformly at random: count the rows, pick a
// uniform offset in [0, count), fetch the single row at that offset.
//
// An empty table yields (nil, nil) — an explicit "no quote available"
// signal, not an error; the caller decides what that means for its user.
//
// This stays O(1) round trips but the OFFSET scan is linear in the offset,
// which is fine for small-to-medium tables and deliberately not optimized
// beyond that.
func (s *QuoteService) GetRandom(ctx context.Context) (*model.Quote, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting random quote: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	offset := rand.Int64N(count)

	quote, err := s.repo.GetByOffset(ctx, offset)
	if err != nil {
		// A row deleted between the count and the fetch can empty the offset.
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("selecting random quote: %w", err)
	}

	return quote, nil
}

// TopTen returns up to ten quotes with the highest vote counts.
func (s *QuoteService) TopTen(ctx context.Context) ([]model.Quote, error) {
	quotes, err := s.repo.ListByVotes(ctx, repository.VotesDesc, TopListSize)
	if err != nil {
		return nil, fmt.Errorf("listing top quotes: %w", err)
	}
	return quotes, nil
}

// WorstTen returns up to ten quotes with the lowest vote counts.
func (s *QuoteService) WorstTen(ctx context.Context) ([]model.Quote, error) {
	quotes, err := s.repo.ListByVotes(ctx, repository.VotesAsc, TopListSize)
	if err != nil {
		return nil, fmt.Errorf("listing worst quotes: %w", err)
	}
	return quotes, nil
}

// Update replaces a quote's content after authenticating the requester as
// the original author.
//
// Check order matters: a requester whose email differs from the stored
// owner's is rejected as not-the-author before any password is examined,
// so the endpoint never leaks whether a stranger's credentials were right.
// The owner association itself is immutable — only content and the update
// timestamp change.
func (s *QuoteService) Update(ctx context.Context, id int64, content, authorEmail, authorPassword string) (*model.Quote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "Content of a quote cannot be empty")
	}

	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if quote.Author == nil || quote.Author.Email != authorEmail {
		return nil, apperror.NotAuthor()
	}

	owner, err := s.users.FindByEmail(ctx, authorEmail)
	if err != nil {
		return nil, fmt.Errorf("updating quote %d: %w", id, err)
	}
	if owner.Password != authorPassword {
		return nil, apperror.InvalidCredentials()
	}

	now := time.Now()
	if err := s.repo.UpdateContent(ctx, id, content, now); err != nil {
		s.logger.Error("failed to update quote",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating quote %d: %w", id, err)
	}

	quote.Content = content
	quote.UpdatedAt = &now

	s.logger.Info("quote updated", slog.Int64("id", id))

	return quote, nil
}

// Upvote increments the quote's vote count by one, with no upper bound.
func (s *QuoteService) Upvote(ctx context.Context, id int64) error {
	if err := s.repo.IncrementVotes(ctx, id); err != nil {
		return err
	}
	s.logger.Info("quote upvoted", slog.Int64("id", id))
	return nil
}

// Downvote decrements the quote's vote count by one, but never below zero:
// at zero the call succeeds without changing anything. That floor is a
// deliberate policy, not a failure.
func (s *QuoteService) Downvote(ctx context.Context, id int64) error {
	if err := s.repo.DecrementVotes(ctx, id); err != nil {
		return err
	}
	s.logger.Info("quote downvoted", slog.Int64("id", id))
	return nil
}

// Delete removes the quote by id. Deleting an id that does not exist is a
// no-op success, making the operation idempotent.
func (s *QuoteService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("quote deleted", slog.Int64("id", id))
	return nil
}
