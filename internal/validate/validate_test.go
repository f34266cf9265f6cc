package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorillasystems/auth-api/internal/payload"
	"github.com/gorillasystems/auth-api/internal/validate"
)

func TestStruct_Valid(t *testing.T) {
	v, err := validate.New()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(payload.VerificationCodeRequest{
		Email:    "ann@x.com",
		Password: "Secret1",
		Name:     "Ann",
	}))
}

func TestStruct_ReportsReadableMessages(t *testing.T) {
	v, err := validate.New()
	require.NoError(t, err)

	err = v.Struct(payload.VerificationCodeRequest{
		Email:    "not-an-email",
		Password: "Secret1",
		Name:     "Ann",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	err = v.Struct(payload.VerificationCodeRequest{
		Email:    "ann@x.com",
		Password: "short",
		Name:     "Ann",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password")
}

func TestStruct_CodeShape(t *testing.T) {
	v, err := validate.New()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(payload.SignupRequest{
		Email:            "ann@x.com",
		VerificationCode: "1234",
	}))

	assert.Error(t, v.Struct(payload.SignupRequest{
		Email:            "ann@x.com",
		VerificationCode: "12345",
	}))

	assert.Error(t, v.Struct(payload.SignupRequest{
		Email:            "ann@x.com",
		VerificationCode: "12ab",
	}))
}
