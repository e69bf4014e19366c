// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Quote represents a user-submitted quote with its running vote count.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize
// this struct. UpdatedAt is a *time.Time because a quote has no update
// timestamp until its content is changed for the first time — nil maps to
// JSON null, which is exactly the wire contract.
//
// Author is the owning user, resolved by the repository when a quote is read
// back with its owner joined in. Only the owner's public fields (name, email)
// are ever populated on reads; the association is set at creation and never
// reassigned afterwards.
type Quote struct {
	ID        int64      `json:"id"`
	Content   string     `json:"content"`
	Votes     int        `json:"votes"`
	CreatedAt time.Time  `json:"dateOfCreation"`
	UpdatedAt *time.Time `json:"dateOfUpdate"`
	UserID    int64      `json:"-"`
	Author    *User      `json:"author,omitempty"`
}
