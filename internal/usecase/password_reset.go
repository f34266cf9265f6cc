package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gorillasystems/auth-api/internal/config"
	"github.com/gorillasystems/auth-api/internal/repository"
	"github.com/gorillasystems/auth-api/internal/security"
)

// PasswordResetUsecase defines the business logic for the emailed-code
// password reset flow.
type PasswordResetUsecase interface {
	// RequestPasswordReset issues a fresh reset code for a registered
	// email and mails it. Returns the target email.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword consumes a valid reset code and replaces the
	// user's password hash.
	ResetPassword(ctx context.Context, params ResetPasswordParams) error
}

// ResetPasswordParams defines the parameters for consuming a reset code.
type ResetPasswordParams struct {
	Email       string
	Code        string
	NewPassword string
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	mailer   CodeMailer
	cfg      *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	mailer CodeMailer,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotRegistered
		}
		return "", err
	}

	code, expiresAt, err := security.GenerateCode(u.cfg.Code.PasswordResetTTL)
	if err != nil {
		return "", err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordResetCode:          &code,
		PasswordResetCodeExpiresAt: &expiresAt,
	}); err != nil {
		return "", err
	}

	if err := u.mailer.SendPasswordResetCode(user.Name, user.Email, code); err != nil {
		return "", err
	}

	return user.Email, nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	user, err := u.userRepo.GetUserByEmail(ctx, NormalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotRegistered
		}
		return err
	}

	if !security.CodeMatches(params.Code, user.PasswordResetCode) {
		return ErrInvalidResetCode
	}

	if time.Now().After(user.PasswordResetCodeExpiresAt) {
		return ErrExpiredResetCode
	}

	passwordHash, err := security.HashPassword(params.NewPassword)
	if err != nil {
		return err
	}

	// The consumed code is cleared so it cannot be replayed within
	// its expiry window.
	clearedCode := ""
	clearedExpiry := time.Time{}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash:               &passwordHash,
		PasswordResetCode:          &clearedCode,
		PasswordResetCodeExpiresAt: &clearedExpiry,
	}); err != nil {
		return err
	}

	return nil
}
