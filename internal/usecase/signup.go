package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gorillasystems/auth-api/internal/config"
	"github.com/gorillasystems/auth-api/internal/model"
	"github.com/gorillasystems/auth-api/internal/repository"
	"github.com/gorillasystems/auth-api/internal/security"
)

// SignupUsecase defines the email verification signup flow: a code is
// requested for an unclaimed email, then consumed to promote the
// pending signup into a verified user.
type SignupUsecase interface {
	RequestVerificationCode(ctx context.Context, params RequestVerificationCodeParams) (string, error)
	ConfirmSignup(ctx context.Context, email, code string) (*model.User, error)
}

// RequestVerificationCodeParams defines the parameters for starting a signup.
type RequestVerificationCodeParams struct {
	Email    string
	Password string
	Name     string
}

type signupUsecase struct {
	userRepo    repository.UserRepository
	pendingRepo repository.PendingSignupRepository
	mailer      CodeMailer
	cfg         *config.Config
}

// NewSignupUsecase creates a new instance of SignupUsecase.
func NewSignupUsecase(
	userRepo repository.UserRepository,
	pendingRepo repository.PendingSignupRepository,
	mailer CodeMailer,
	cfg *config.Config,
) SignupUsecase {
	return &signupUsecase{
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		mailer:      mailer,
		cfg:         cfg,
	}
}

func (u *signupUsecase) RequestVerificationCode(
	ctx context.Context,
	params RequestVerificationCodeParams,
) (string, error) {
	email := NormalizeEmail(params.Email)

	if _, err := u.userRepo.GetUserByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return "", err
	}

	code, expiresAt, err := security.GenerateCode(u.cfg.Code.VerificationTTL)
	if err != nil {
		return "", err
	}

	// Upserting keyed by email keeps at most one pending signup per
	// address; re-requesting a code overwrites the previous one.
	if _, err := u.pendingRepo.Upsert(ctx, &model.PendingSignup{
		Email:                     email,
		Name:                      params.Name,
		PasswordHash:              passwordHash,
		VerificationCode:          code,
		VerificationCodeExpiresAt: expiresAt,
	}); err != nil {
		return "", err
	}

	if err := u.mailer.SendVerificationCode(params.Name, email, code); err != nil {
		return "", err
	}

	return email, nil
}

func (u *signupUsecase) ConfirmSignup(ctx context.Context, email, code string) (*model.User, error) {
	email = NormalizeEmail(email)

	// Re-check at confirmation time: a verified user may have claimed
	// the email since the code was requested.
	if _, err := u.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	signup, err := u.pendingRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSignupNotFound
		}
		return nil, err
	}

	if !security.CodeMatches(code, signup.VerificationCode) {
		return nil, ErrInvalidVerificationCode
	}

	if time.Now().After(signup.VerificationCodeExpiresAt) {
		return nil, ErrExpiredVerificationCode
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:         signup.Email,
		EmailVerified: true,
		PasswordHash:  signup.PasswordHash,
		Name:          signup.Name,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// The pending record is consumed only after the user exists, so a
	// failed creation leaves the signup resumable.
	if err := u.pendingRepo.DeleteByEmail(ctx, email); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail lowercases and trims an email address so that lookups
// and uniqueness checks agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
