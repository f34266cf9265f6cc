package usecase

import "errors"

// Business-rule failures recovered locally and surfaced to the client
// as 400/409 responses. Anything else crossing the usecase boundary is
// an internal error.
var (
	ErrEmailTaken              = errors.New("email is already in use")
	ErrSignupNotFound          = errors.New("please provide the email you started the signup process with")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrExpiredVerificationCode = errors.New("expired verification code")
	ErrUserNotFound            = errors.New("no user found")
	ErrGoogleAccountOnly       = errors.New("this email has been used for google sign-in")
	ErrInvalidCredentials      = errors.New("invalid password")
	ErrNotRegistered           = errors.New("email has not been registered")
	ErrInvalidResetCode        = errors.New("invalid password reset code")
	ErrExpiredResetCode        = errors.New("expired password reset code")
)

// CodeMailer delivers one-time codes to an email address. A delivery
// failure fails the operation that issued the code, so a valid code is
// never left silently unsent.
type CodeMailer interface {
	SendVerificationCode(name, to, code string) error
	SendPasswordResetCode(name, to, code string) error
}
