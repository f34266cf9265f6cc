package usecase

import (
	"context"

	"github.com/gorillasystems/auth-api/internal/model"
	"github.com/gorillasystems/auth-api/internal/provider"
)

// Strategy names the routing layer dispatches on.
const (
	StrategyLocalSignup = "local-signup"
	StrategyLocalLogin  = "local-login"
	StrategyGoogle      = "google"
)

// Credentials carries the inputs a strategy validates. Password holds
// the plaintext password for local-login and the one-time verification
// code for local-signup. Profile is set only for the google strategy.
type Credentials struct {
	Email    string
	Password string
	Profile  *provider.GoogleProfile
}

// Strategy checks one set of credentials against the identity store
// and yields the verified user. Business-rule failures are reported
// with this package's sentinel errors; anything else is internal.
type Strategy func(ctx context.Context, cred Credentials) (*model.User, error)

// NewStrategies builds the strategy map handed to the routing layer
// once at startup.
func NewStrategies(signup SignupUsecase, auth AuthUsecase) map[string]Strategy {
	return map[string]Strategy{
		StrategyLocalSignup: func(ctx context.Context, cred Credentials) (*model.User, error) {
			return signup.ConfirmSignup(ctx, cred.Email, cred.Password)
		},
		StrategyLocalLogin: func(ctx context.Context, cred Credentials) (*model.User, error) {
			return auth.Login(ctx, LoginParams{Email: cred.Email, Password: cred.Password})
		},
		StrategyGoogle: func(ctx context.Context, cred Credentials) (*model.User, error) {
			return auth.LoginWithGoogle(ctx, cred.Profile)
		},
	}
}
