package repository

import (
	"context"
	"time"

	"github.com/smileksey/quotes-service/internal/model"
)

// VoteOrder selects the sort direction for vote-ranked queries.
type VoteOrder int

const (
	VotesDesc VoteOrder = iota // best first
	VotesAsc                   // worst first
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *model.Quote) error
	// GetByID returns the quote with its owner's public fields resolved.
	GetByID(ctx context.Context, id int64) (*model.Quote, error)
	// GetByOffset returns the single quote at the given logical offset in
	// insertion order. Used for random selection via offset pagination.
	GetByOffset(ctx context.Context, offset int64) (*model.Quote, error)
	Count(ctx context.Context) (int64, error)
	ListByVotes(ctx context.Context, order VoteOrder, limit int) ([]model.Quote, error)
	// UpdateContent replaces the content and stamps date_of_update.
	// The owning user is never touched.
	UpdateContent(ctx context.Context, id int64, content string, updatedAt time.Time) error
	IncrementVotes(ctx context.Context, id int64) error
	// DecrementVotes decrements only while votes > 0; at 0 it is a no-op.
	DecrementVotes(ctx context.Context, id int64) error
	// Delete removes the quote; deleting an absent id is a no-op.
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}
