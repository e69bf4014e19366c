package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/smileksey/quotes-service/internal/apperror"
	"github.com/smileksey/quotes-service/internal/service"
	"github.com/smileksey/quotes-service/internal/validation"
)

// registerRequest is the inbound payload for user registration.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserHandler serves the /users endpoints.
type UserHandler struct {
	users     *service.UserService
	validator *validation.UserValidator
	logger    *slog.Logger
}

func NewUserHandler(users *service.UserService, validator *validation.UserValidator, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validator,
		logger:    logger,
	}
}

// HandleRegister registers a new user.
//
// HTTP: POST /users/register
// Body: {"name": "...", "email": "...", "password": "..."}
// Success: 200 with no body. All field failures for one request are merged
// into a single message in the 400 body.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid registration JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid JSON body"})
		return
	}

	errs, err := h.validator.ValidateRegistration(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Error("registration validation failed unexpectedly", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	if len(errs) > 0 {
		writeError(w, apperror.ValidationFailed(errs[0].Field, errs.Message()))
		return
	}

	if _, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}
