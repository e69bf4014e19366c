// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered identity that may author quotes.
//
// Email is the external identifier: it is UNIQUE in the database and is what
// quote submissions reference to claim authorship.
//
// WHY Password HAS json:"-"?
// The password must never appear in any outbound representation. The json:"-"
// tag makes encoding/json skip the field entirely, so even a careless handler
// that serializes a whole User cannot leak it.
//
// Passwords are stored and compared in plain text. That matches the behaviour
// of the system this service replicates; a real deployment would store a
// salted hash instead.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"dateOfCreation"`
}
