package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smileksey/quotes-service/internal/apperror"
	"github.com/smileksey/quotes-service/internal/model"
	"github.com/smileksey/quotes-service/internal/repository"
)

// Compile-time check that *DB implements repository.QuoteRepository.
var _ repository.QuoteRepository = (*DB)(nil)

// quoteColumns is the SELECT list shared by every quote read. The owner's
// public fields come from a JOIN; the password column is never selected here.
const quoteColumns = `
	q.id, q.content, q.votes, q.date_of_creation, q.date_of_update,
	u.id, u.name, u.email`

// Create inserts a new quote. The caller sets Content, CreatedAt, and UserID;
// the generated id is written back into quote.ID. Votes start at zero via the
// column default.
func (db *DB) Create(ctx context.Context, quote *model.Quote) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO quote (content, date_of_creation, user_id)
		 VALUES (?, ?, ?)`,
		quote.Content,
		quote.CreatedAt,
		quote.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating quote: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading generated quote id: %w", err)
	}
	quote.ID = id
	quote.Votes = 0

	return nil
}

// GetByID retrieves a single quote with its owner joined in.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Quote, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+quoteColumns+`
		 FROM quote q
		 JOIN user u ON u.id = q.user_id
		 WHERE q.id = ?`,
		id,
	)

	quote, err := scanQuote(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.QuoteNotFound(id)
		}
		return nil, fmt.Errorf("sqlite: getting quote %d: %w", id, err)
	}

	return quote, nil
}

// GetByOffset returns the single quote at the given logical offset in
// insertion order. sql.ErrNoRows maps to not-found — with offsets derived
// from Count this only happens when rows were deleted in between.
func (db *DB) GetByOffset(ctx context.Context, offset int64) (*model.Quote, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+quoteColumns+`
		 FROM quote q
		 JOIN user u ON u.id = q.user_id
		 ORDER BY q.id
		 LIMIT 1 OFFSET ?`,
		offset,
	)

	quote, err := scanQuote(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "no quote at this offset"}
		}
		return nil, fmt.Errorf("sqlite: getting quote at offset %d: %w", offset, err)
	}

	return quote, nil
}

// Count returns the number of quotes in the table.
func (db *DB) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM quote`).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite: counting quotes: %w", err)
	}
	return count, nil
}

// ListByVotes returns up to limit quotes ordered by vote count. There is no
// secondary sort key: tie order among equal vote counts is whatever SQLite
// yields, and callers must not depend on it.
func (db *DB) ListByVotes(ctx context.Context, order repository.VoteOrder, limit int) ([]model.Quote, error) {
	direction := "DESC"
	if order == repository.VotesAsc {
		direction = "ASC"
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+quoteColumns+`
		 FROM quote q
		 JOIN user u ON u.id = q.user_id
		 ORDER BY q.votes `+direction+`
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing quotes by votes: %w", err)
	}
	defer rows.Close()

	quotes := make([]model.Quote, 0, limit)
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning quote row: %w", err)
		}
		quotes = append(quotes, *quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating quotes: %w", err)
	}

	return quotes, nil
}

// UpdateContent replaces the quote's content and stamps date_of_update.
// Only content and the update timestamp change; the owner and creation
// timestamp are immutable.
func (db *DB) UpdateContent(ctx context.Context, id int64, content string, updatedAt time.Time) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE quote SET content = ?, date_of_update = ? WHERE id = ?`,
		content, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating quote %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.QuoteNotFound(id)
	}

	return nil
}

// IncrementVotes increments the vote count by one. A single UPDATE statement
// is atomic, so concurrent upvotes on the same quote never lose updates.
func (db *DB) IncrementVotes(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE quote SET votes = votes + 1 WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upvoting quote %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.QuoteNotFound(id)
	}

	return nil
}

// DecrementVotes decrements the vote count by one, but only while it is
// above zero — at zero the call is a silent no-op. The conditional decrement
// and the existence check run in one transaction so the floor can never be
// undershot by concurrent downvotes.
func (db *DB) DecrementVotes(ctx context.Context, id int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning downvote transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE quote SET votes = votes - 1 WHERE id = ? AND votes > 0`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: downvoting quote %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	if affected == 0 {
		// Either the quote is absent or it already sits at the floor.
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM quote WHERE id = ?`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return apperror.QuoteNotFound(id)
		}
		if err != nil {
			return fmt.Errorf("sqlite: checking quote %d: %w", id, err)
		}
		// votes already 0 — deliberate no-op
	}

	return tx.Commit()
}

// Delete removes a quote by id. Deleting an absent id is a no-op, not an
// error — delete is idempotent by contract.
func (db *DB) Delete(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM quote WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting quote %d: %w", id, err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanQuote reads one quoteColumns row into a model.Quote with its Author
// populated. date_of_update is nullable, hence the sql.NullTime indirection.
func scanQuote(s scanner) (*model.Quote, error) {
	var (
		q       model.Quote
		author  model.User
		updated sql.NullTime
	)

	if err := s.Scan(
		&q.ID,
		&q.Content,
		&q.Votes,
		&q.CreatedAt,
		&updated,
		&author.ID,
		&author.Name,
		&author.Email,
	); err != nil {
		return nil, err
	}

	if updated.Valid {
		t := updated.Time
		q.UpdatedAt = &t
	}
	q.UserID = author.ID
	q.Author = &author

	return &q, nil
}
