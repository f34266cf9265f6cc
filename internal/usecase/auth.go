package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gorillasystems/auth-api/internal/model"
	"github.com/gorillasystems/auth-api/internal/provider"
	"github.com/gorillasystems/auth-api/internal/repository"
	"github.com/gorillasystems/auth-api/internal/security"
)

// AuthUsecase defines the interface for credential-checking use cases.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (*model.User, error)
	LoginWithGoogle(ctx context.Context, profile *provider.GoogleProfile) (*model.User, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

type authUsecase struct {
	userRepo repository.UserRepository
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(userRepo repository.UserRepository) AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, NormalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	// Federation-only accounts have no password hash to compare
	// against; the client must use Google sign-in instead.
	if user.GoogleID != "" && user.PasswordHash == "" {
		return nil, ErrGoogleAccountOnly
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// LoginWithGoogle reconciles a Google profile with the identity store.
// The three branches are exhaustive and mutually exclusive under the
// email uniqueness invariant: an account already linked to the Google
// id, an account owning the email that gets the id linked in, or a
// brand-new account created from the profile.
func (u *authUsecase) LoginWithGoogle(
	ctx context.Context,
	profile *provider.GoogleProfile,
) (*model.User, error) {
	user, err := u.userRepo.GetUserByGoogleID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	email := NormalizeEmail(profile.Email)

	existing, err := u.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return u.userRepo.UpdateUser(ctx, existing.ID.Hex(), repository.UpdateUserParams{
			GoogleID:      &profile.ID,
			Picture:       &profile.Picture,
			EmailVerified: &profile.EmailVerified,
		})
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return u.userRepo.CreateUser(ctx, &model.User{
		GoogleID:      profile.ID,
		Email:         email,
		EmailVerified: profile.EmailVerified,
		Name:          profile.Name,
		Picture:       profile.Picture,
	})
}
