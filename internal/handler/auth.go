package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gorillasystems/auth-api/internal/config"
	"github.com/gorillasystems/auth-api/internal/payload"
	"github.com/gorillasystems/auth-api/internal/repository"
	"github.com/gorillasystems/auth-api/internal/session"
	"github.com/gorillasystems/auth-api/internal/usecase"
	"github.com/gorillasystems/auth-api/internal/validate"
)

// AuthHandler exposes the authentication JSON API.
type AuthHandler struct {
	logger        *zerolog.Logger
	validator     *validate.Validator
	signupUsecase usecase.SignupUsecase
	resetUsecase  usecase.PasswordResetUsecase
	strategies    map[string]usecase.Strategy
	sessions      *session.Store
	userRepo      repository.UserRepository
	oauthProvider OAuthProvider
	cfg           *config.Config
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	logger *zerolog.Logger,
	validator *validate.Validator,
	signupUsecase usecase.SignupUsecase,
	resetUsecase usecase.PasswordResetUsecase,
	strategies map[string]usecase.Strategy,
	sessions *session.Store,
	userRepo repository.UserRepository,
	oauthProvider OAuthProvider,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		logger:        logger,
		validator:     validator,
		signupUsecase: signupUsecase,
		resetUsecase:  resetUsecase,
		strategies:    strategies,
		sessions:      sessions,
		userRepo:      userRepo,
		oauthProvider: oauthProvider,
		cfg:           cfg,
	}
}

// Routes returns the router for the authentication API.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/verification-code", h.handleVerificationCode)
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
	r.Get("/auth/google", h.handleGoogleRedirect)
	r.Get("/auth/google/callback", h.handleGoogleCallback)
	r.Post("/logout", h.handleLogout)
	r.Post("/password-forgot", h.handlePasswordForgot)
	r.Post("/password-reset", h.handlePasswordReset)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/current-user", h.handleCurrentUser)
	})

	return r
}

func (h *AuthHandler) handleVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req payload.VerificationCodeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	email, err := h.signupUsecase.RequestVerificationCode(r.Context(), usecase.RequestVerificationCodeParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{
		Message: fmt.Sprintf("Verification code sent to %s", email),
		Email:   email,
	})
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	// The signup strategy carries the one-time code in the password slot.
	user, err := h.strategies[usecase.StrategyLocalSignup](r.Context(), usecase.Credentials{
		Email:    req.Email,
		Password: req.VerificationCode,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	if err := h.establishSession(w, r, user.ID.Hex()); err != nil {
		h.logger.Error().Err(err).Msg("failed to establish session")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.strategies[usecase.StrategyLocalLogin](r.Context(), usecase.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	if err := h.establishSession(w, r, user.ID.Hex()); err != nil {
		h.logger.Error().Err(err).Msg("failed to establish session")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cfg.Session.CookieName); err == nil {
		if err := h.sessions.Invalidate(r.Context(), cookie.Value); err != nil {
			h.logger.Error().Err(err).Msg("failed to invalidate session")
			respondError(w, http.StatusInternalServerError, "logout failed")
			return
		}
	}

	h.clearSessionCookie(w)
	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "Logout successful"})
}

func (h *AuthHandler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "error fetching the current user")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *AuthHandler) handlePasswordForgot(w http.ResponseWriter, r *http.Request) {
	var req payload.PasswordForgotRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	email, err := h.resetUsecase.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{
		Message: fmt.Sprintf("Password reset code sent to %s", email),
		Email:   email,
	})
}

func (h *AuthHandler) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.PasswordResetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.resetUsecase.ResetPassword(r.Context(), usecase.ResetPasswordParams{
		Email:       req.Email,
		Code:        req.PasswordResetCode,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{
		Message: fmt.Sprintf("Password for %s successfully changed", usecase.NormalizeEmail(req.Email)),
	})
}

// decodeAndValidate parses the JSON body into req and validates it,
// writing a 400 response on failure.
func (h *AuthHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

// respondUsecaseError maps the usecase error taxonomy to HTTP statuses.
// Business-rule failures keep their message; anything unexpected is
// logged and reported as an opaque 500.
func (h *AuthHandler) respondUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrNotRegistered):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrSignupNotFound),
		errors.Is(err, usecase.ErrInvalidVerificationCode),
		errors.Is(err, usecase.ErrExpiredVerificationCode),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrGoogleAccountOnly),
		errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidResetCode),
		errors.Is(err, usecase.ErrExpiredResetCode):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("authentication request failed")
		respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, userID string) error {
	handle, err := h.sessions.Bind(r.Context(), userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    handle,
		Path:     "/",
		MaxAge:   int(h.cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
