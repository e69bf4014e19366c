// Package handler contains the HTTP layer: it decodes wire payloads, runs
// the request validators, delegates to the services, and renders results or
// error bodies. No business rules live here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/smileksey/quotes-service/internal/apperror"
	"github.com/smileksey/quotes-service/internal/service"
	"github.com/smileksey/quotes-service/internal/validation"
)

// quoteRequest is the inbound payload for quote submission and update.
// The requester claims authorship with userEmail and proves it with
// userPassword; both are verified against stored users by the service.
type quoteRequest struct {
	Content      string `json:"content"`
	UserEmail    string `json:"userEmail"`
	UserPassword string `json:"userPassword"`
}

// QuoteHandler serves all /quotes endpoints.
type QuoteHandler struct {
	quotes    *service.QuoteService
	validator *validation.QuoteValidator
	logger    *slog.Logger
}

func NewQuoteHandler(quotes *service.QuoteService, validator *validation.QuoteValidator, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes:    quotes,
		validator: validator,
		logger:    logger,
	}
}

// HandleAdd creates a new quote.
//
// HTTP: POST /quotes/add
// Body: {"content": "...", "userEmail": "...", "userPassword": "..."}
// Success: 200 with no body.
func (h *QuoteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid quote JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid JSON body"})
		return
	}

	errs, err := h.validator.ValidateSubmission(r.Context(), req.Content, req.UserEmail, req.UserPassword)
	if err != nil {
		h.logger.Error("quote validation failed unexpectedly", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	if len(errs) > 0 {
		writeError(w, apperror.ValidationFailed(errs[0].Field, errs.Message()))
		return
	}

	if _, err := h.quotes.Create(r.Context(), req.Content, req.UserEmail, req.UserPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

// HandleGetByID returns one quote.
//
// HTTP: GET /quotes/{id}
func (h *QuoteHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}

	quote, err := h.quotes.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRepresentation(quote))
}

// HandleRandom returns a uniformly random quote, or an empty 200 when no
// quotes exist — the absence of quotes is not an error.
//
// HTTP: GET /quotes/random
func (h *QuoteHandler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quotes.GetRandom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if quote == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, toRepresentation(quote))
}

// HandleTopTen returns up to ten quotes with the best vote counts.
//
// HTTP: GET /quotes/top10
func (h *QuoteHandler) HandleTopTen(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quotes.TopTen(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRepresentations(quotes))
}

// HandleWorstTen returns up to ten quotes with the worst vote counts.
//
// HTTP: GET /quotes/worst10
func (h *QuoteHandler) HandleWorstTen(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quotes.WorstTen(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRepresentations(quotes))
}

// HandleUpdate replaces a quote's content, author-authenticated.
//
// HTTP: PATCH /quotes/{id}
// Body: {"content": "...", "userEmail": "...", "userPassword": "..."}
// Success: 200 with no body.
func (h *QuoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid quote JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid JSON body"})
		return
	}

	if errs := h.validator.ValidateUpdate(req.Content, req.UserEmail, req.UserPassword); len(errs) > 0 {
		writeError(w, apperror.ValidationFailed(errs[0].Field, errs.Message()))
		return
	}

	if _, err := h.quotes.Update(r.Context(), id, req.Content, req.UserEmail, req.UserPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

// HandleUpvote increments a quote's vote count.
//
// HTTP: PATCH /quotes/{id}/upvote
func (h *QuoteHandler) HandleUpvote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}

	if err := h.quotes.Upvote(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

// HandleDownvote decrements a quote's vote count, flooring at zero.
//
// HTTP: PATCH /quotes/{id}/downvote
func (h *QuoteHandler) HandleDownvote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}

	if err := h.quotes.Downvote(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

// HandleDelete removes a quote. Deleting an absent id still succeeds.
//
// HTTP: DELETE /quotes/{id}
func (h *QuoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}

	if err := h.quotes.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

// quoteID extracts and parses the {id} path parameter. On failure it writes
// the 400 itself and reports false.
func (h *QuoteHandler) quoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "quote id must be an integer"))
		return 0, false
	}
	return id, true
}
