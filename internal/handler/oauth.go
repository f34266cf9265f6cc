package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/gorillasystems/auth-api/internal/provider"
	"github.com/gorillasystems/auth-api/internal/usecase"
)

// OAuthProvider abstracts the Google authorization-code flow.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (*provider.GoogleProfile, error)
}

const oauthStateCookie = "oauthstate"

func (h *AuthHandler) handleGoogleRedirect(w http.ResponseWriter, r *http.Request) {
	state, err := generateOAuthState()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate oauth state")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauthProvider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		respondError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	token, err := h.oauthProvider.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to exchange authorization code")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	profile, err := h.oauthProvider.FetchProfile(r.Context(), token)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch google profile")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	user, err := h.strategies[usecase.StrategyGoogle](r.Context(), usecase.Credentials{Profile: profile})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	if err := h.establishSession(w, r, user.ID.Hex()); err != nil {
		h.logger.Error().Err(err).Msg("failed to establish session")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	http.Redirect(w, r, h.cfg.Google.DashboardURL, http.StatusFound)
}

func generateOAuthState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
