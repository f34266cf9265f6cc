package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorillasystems/auth-api/internal/security"
)

func newResetFixture(t *testing.T) (*fakeUserRepo, *fakeMailer, PasswordResetUsecase) {
	t.Helper()

	userRepo := newFakeUserRepo()
	mailer := &fakeMailer{}
	uc := NewPasswordResetUsecase(userRepo, mailer, testConfig())

	return userRepo, mailer, uc
}

func TestRequestPasswordReset_Success(t *testing.T) {
	userRepo, mailer, uc := newResetFixture(t)
	seeded := seedLocalUser(t, userRepo, "ann@x.com", "Secret1")

	email, err := uc.RequestPasswordReset(context.Background(), "Ann@X.com")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", email)

	stored := userRepo.byID[seeded.ID.Hex()]
	require.Len(t, stored.PasswordResetCode, 4)
	assert.True(t, stored.PasswordResetCodeExpiresAt.After(time.Now().Add(14*time.Minute)))

	require.Len(t, mailer.resetSent, 1)
	assert.Equal(t, "ann@x.com", mailer.resetSent[0].to)
	assert.Equal(t, stored.PasswordResetCode, mailer.resetSent[0].code)
}

func TestRequestPasswordReset_NotRegistered(t *testing.T) {
	_, mailer, uc := newResetFixture(t)

	_, err := uc.RequestPasswordReset(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.Empty(t, mailer.resetSent, "no code may be generated for an unregistered email")
}

func TestRequestPasswordReset_MailFailureFailsRequest(t *testing.T) {
	userRepo, mailer, uc := newResetFixture(t)
	seedLocalUser(t, userRepo, "ann@x.com", "Secret1")
	mailer.err = errors.New("smtp unreachable")

	_, err := uc.RequestPasswordReset(context.Background(), "ann@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotRegistered)
}

func TestResetPassword_Success(t *testing.T) {
	userRepo, _, uc := newResetFixture(t)
	seeded := seedLocalUser(t, userRepo, "ann@x.com", "Secret1")
	ctx := context.Background()

	_, err := uc.RequestPasswordReset(ctx, "ann@x.com")
	require.NoError(t, err)
	code := userRepo.byID[seeded.ID.Hex()].PasswordResetCode

	err = uc.ResetPassword(ctx, ResetPasswordParams{
		Email:       "ann@x.com",
		Code:        code,
		NewPassword: "Secret2",
	})
	require.NoError(t, err)

	stored := userRepo.byID[seeded.ID.Hex()]

	matches, err := security.VerifyPassword("Secret2", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, matches)

	assert.Empty(t, stored.PasswordResetCode, "a consumed code is cleared")
	assert.True(t, stored.PasswordResetCodeExpiresAt.IsZero())

	// Replaying the consumed code must fail.
	err = uc.ResetPassword(ctx, ResetPasswordParams{
		Email:       "ann@x.com",
		Code:        code,
		NewPassword: "Secret3",
	})
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestResetPassword_WrongCode(t *testing.T) {
	userRepo, _, uc := newResetFixture(t)
	seeded := seedLocalUser(t, userRepo, "ann@x.com", "Secret1")
	ctx := context.Background()

	_, err := uc.RequestPasswordReset(ctx, "ann@x.com")
	require.NoError(t, err)

	code := userRepo.byID[seeded.ID.Hex()].PasswordResetCode
	wrong := "0000"
	if code == wrong {
		wrong = "0001"
	}

	err = uc.ResetPassword(ctx, ResetPasswordParams{
		Email:       "ann@x.com",
		Code:        wrong,
		NewPassword: "Secret2",
	})
	assert.ErrorIs(t, err, ErrInvalidResetCode)

	matches, err := security.VerifyPassword("Secret1", userRepo.byID[seeded.ID.Hex()].PasswordHash)
	require.NoError(t, err)
	assert.True(t, matches, "the password is unchanged after a failed reset")
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	userRepo, _, uc := newResetFixture(t)
	seeded := seedLocalUser(t, userRepo, "ann@x.com", "Secret1")

	stored := userRepo.byID[seeded.ID.Hex()]
	stored.PasswordResetCode = "1234"
	stored.PasswordResetCodeExpiresAt = time.Now().Add(-time.Minute)

	err := uc.ResetPassword(context.Background(), ResetPasswordParams{
		Email:       "ann@x.com",
		Code:        "1234",
		NewPassword: "Secret2",
	})
	assert.ErrorIs(t, err, ErrExpiredResetCode)
}

func TestResetPassword_NotRegistered(t *testing.T) {
	_, _, uc := newResetFixture(t)

	err := uc.ResetPassword(context.Background(), ResetPasswordParams{
		Email:       "ghost@x.com",
		Code:        "1234",
		NewPassword: "Secret2",
	})
	assert.ErrorIs(t, err, ErrNotRegistered)
}
