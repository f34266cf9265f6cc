package payload

import (
	"time"

	"github.com/gorillasystems/auth-api/internal/model"
)

type VerificationCodeRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=64"`
	Name     string `json:"name"     validate:"required"`
}

type SignupRequest struct {
	Email            string `json:"email"            validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required,len=4,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetRequest struct {
	Email             string `json:"email"             validate:"required,email"`
	PasswordResetCode string `json:"passwordResetCode" validate:"required,len=4,numeric"`
	NewPassword       string `json:"newPassword"       validate:"required,min=6,max=64"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse is the API shape of a verified account. The password
// hash, reset code and reset expiry are never serialized.
type UserResponse struct {
	ID            string    `json:"id"`
	GoogleID      string    `json:"googleId,omitempty"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	Picture       string    `json:"picture"`
	PhoneNumber   string    `json:"phoneNumber,omitempty"`
	CountryCode   string    `json:"countryCode,omitempty"`
	Roles         []string  `json:"roles"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUserResponse maps a user to its API shape.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:            user.ID.Hex(),
		GoogleID:      user.GoogleID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		Name:          user.Name,
		Address:       user.Address,
		Picture:       user.Picture,
		PhoneNumber:   user.PhoneNumber,
		CountryCode:   user.CountryCode,
		Roles:         user.Roles,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
