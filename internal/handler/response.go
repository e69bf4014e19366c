package handler

// Response helpers shared by all endpoints.
//
// Every error response from the API has the same shape:
//
//	{"message": "quote with id 42 is not found"}
//
// All domain failures — validation, unknown quote or author, bad credentials,
// non-author update, duplicate registration — are client errors: the request
// was well-formed HTTP but wrong in substance, so they all map to 400 with
// the failure's message. Only unexpected errors (a broken database, a bug)
// become 500, with a generic body so internals never leak to the client.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/smileksey/quotes-service/internal/apperror"
	"github.com/smileksey/quotes-service/internal/model"
)

// ErrorResponse is the standard error body for all endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
}

// QuoteRepresentation is the outbound wire form of a quote. The owner
// appears only through their public name and email; the password has no
// field here at all. DateOfUpdate is null until the first content update.
type QuoteRepresentation struct {
	ID             int64      `json:"id"`
	Content        string     `json:"content"`
	Votes          int        `json:"votes"`
	DateOfCreation time.Time  `json:"dateOfCreation"`
	DateOfUpdate   *time.Time `json:"dateOfUpdate"`
	UserName       string     `json:"userName"`
	UserEmail      string     `json:"userEmail"`
}

// toRepresentation maps a domain quote to its wire form.
func toRepresentation(q *model.Quote) QuoteRepresentation {
	rep := QuoteRepresentation{
		ID:             q.ID,
		Content:        q.Content,
		Votes:          q.Votes,
		DateOfCreation: q.CreatedAt,
		DateOfUpdate:   q.UpdatedAt,
	}
	if q.Author != nil {
		rep.UserName = q.Author.Name
		rep.UserEmail = q.Author.Email
	}
	return rep
}

func toRepresentations(quotes []model.Quote) []QuoteRepresentation {
	reps := make([]QuoteRepresentation, 0, len(quotes))
	for i := range quotes {
		reps = append(reps, toRepresentation(&quotes[i]))
	}
	return reps
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the status, and the status before the body — once Encode
// writes, the headers are on the wire. A nil data means "no body": the
// acknowledgment form used by every mutating endpoint.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	if data != nil {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError translates a service-layer error into an HTTP response.
// Typed domain errors carry their message to the client as a 400; anything
// else is a 500 with a generic body.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "an internal error occurred"})
}
