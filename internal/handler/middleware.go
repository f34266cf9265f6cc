package handler

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gorillasystems/auth-api/internal/model"
	"github.com/gorillasystems/auth-api/internal/session"
)

type userContextKey struct{}

// UserFromContext returns the authenticated user stored by RequireAuth.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*model.User)
	return user, ok
}

// RequireAuth resolves the session cookie and loads the bound user
// fresh from the store on every request, so role or verification
// changes take effect immediately. A handle whose user no longer
// exists is invalidated.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cfg.Session.CookieName)
		if err != nil || cookie.Value == "" {
			respondError(w, http.StatusBadRequest, "not authenticated")
			return
		}

		userID, err := h.sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				respondError(w, http.StatusBadRequest, "not authenticated")
				return
			}

			h.logger.Error().Err(err).Msg("failed to resolve session")
			respondError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		user, err := h.userRepo.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				_ = h.sessions.Invalidate(r.Context(), cookie.Value)
				h.clearSessionCookie(w)
				respondError(w, http.StatusBadRequest, "not authenticated")
				return
			}

			h.logger.Error().Err(err).Msg("failed to load current user")
			respondError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
