package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/store"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/httputil"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/logger"
)

// sessionCookie names the cookie carrying the session ID for browsers that
// do not send the X-Session-ID header themselves.
const sessionCookie = "storefront_session"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	sessionKey contextKey = "session_id"
	tokenKey   contextKey = "access_token"
)

// SessionID is middleware that establishes the session identity for the
// request: the X-Session-ID header wins, then the session cookie, and when
// neither is present a new ID is minted and set as a cookie. The resolved ID
// is echoed in the X-Session-ID response header and stored in the request
// context.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := r.Header.Get("X-Session-ID")
		if sid == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		w.Header().Set("X-Session-ID", sid)

		ctx := context.WithValue(r.Context(), sessionKey, sid)
		ctx = logger.WithSessionID(ctx, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionIDFromContext extracts the session ID established by SessionID.
func sessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}

// RequireAdmin gates the admin routes on the session's cached access token
// carrying role ADMIN. The token is parsed without signature verification:
// this is a display gate, the commerce API verifies every admin call it
// receives. The token is placed in the request context for the handlers.
func RequireAdmin(st store.SessionStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := sessionIDFromContext(r.Context())

			token, err := st.Token(r.Context(), sid)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
						Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
					})
					return
				}
				httputil.WriteError(w, r, err, log)
				return
			}

			if !roleIsAdmin(token) {
				httputil.WriteJSON(w, http.StatusForbidden, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "FORBIDDEN", Message: "admin role required"},
				})
				return
			}

			ctx := context.WithValue(r.Context(), tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromContext extracts the access token placed by RequireAdmin.
func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// roleIsAdmin parses the token's claims without verifying the signature and
// compares the normalized role claim literally against ADMIN.
func roleIsAdmin(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	role, _ := claims["role"].(string)
	return domain.NormalizeRole(role) == domain.RoleAdmin
}

// claimsProfile builds a UserProfile from the token's unverified claims.
func claimsProfile(token string) *domain.UserProfile {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	id := str("sub")
	if id == "" {
		id = str("id")
	}
	return &domain.UserProfile{
		ID:    id,
		Email: str("email"),
		Name:  str("name"),
		Role:  str("role"),
	}
}

// writeSessionError maps an upstream 401 to a cleared session and a
// SESSION_EXPIRED response; everything else goes through the standard
// error writer.
func writeSessionError(w http.ResponseWriter, r *http.Request, st store.SessionStore, err error, log *slog.Logger) {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		sid := sessionIDFromContext(r.Context())
		if cerr := st.ClearSession(r.Context(), sid); cerr != nil {
			log.ErrorContext(r.Context(), "failed to clear expired session",
				slog.String("session_id", sid),
				slog.String("error", cerr.Error()),
			)
		}
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "SESSION_EXPIRED", Message: "session expired, sign in again"},
		})
		return
	}
	httputil.WriteError(w, r, err, log)
}
