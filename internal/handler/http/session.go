package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/store"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/httputil"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/validator"
)

// SessionHandler manages the session's access token and cached profile.
type SessionHandler struct {
	store  store.SessionStore
	logger *slog.Logger
}

// NewSessionHandler creates a session HTTP handler.
func NewSessionHandler(st store.SessionStore, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{store: st, logger: logger}
}

// AttachTokenRequest is the JSON request body for attaching an access token
// obtained from the commerce API's login endpoint.
type AttachTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// AttachToken handles POST /api/v1/session/token. The token is stored for
// the session and its claims are cached as the session profile.
func (h *SessionHandler) AttachToken(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())

	var req AttachTokenRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.store.SetToken(r.Context(), sid, req.Token); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	profile := claimsProfile(req.Token)
	if profile != nil {
		if err := h.store.SetUser(r.Context(), sid, profile); err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}

	h.logger.InfoContext(r.Context(), "token attached to session", slog.String("session_id", sid))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// Profile handles GET /api/v1/session.
func (h *SessionHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())

	user, err := h.store.User(r.Context(), sid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "no active session"},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// EndSession handles DELETE /api/v1/session. Every session-owned key is
// removed, including cart and wishlist.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())

	if err := h.store.ClearSession(r.Context(), sid); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "session cleared", slog.String("session_id", sid))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}
