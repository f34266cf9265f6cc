package mailer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends the one-time code emails over SMTP.
type Mailer struct {
	config *mailerConfig
	dialer *gomail.Dialer
}

// NewMailer creates a new Mailer instance configured from environment
// variables.
func NewMailer(logger *zerolog.Logger) *Mailer {
	cfg := newMailerConfig(logger)

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate Mailer configuration")
	}

	dialer := gomail.NewDialer(
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
	)

	return &Mailer{
		config: cfg,
		dialer: dialer,
	}
}

// SendVerificationCode emails a signup verification code.
func (m *Mailer) SendVerificationCode(name, to, code string) error {
	htmlBody := codeEmailBody(
		"Email Verification",
		name,
		"Thank you for signing up. To complete your registration, please use the following verification code:",
		code,
	)

	return m.sendHTML(to, "Your Verification Code", htmlBody)
}

// SendPasswordResetCode emails a password reset code.
func (m *Mailer) SendPasswordResetCode(name, to, code string) error {
	htmlBody := codeEmailBody(
		"Password Reset",
		name,
		"Please use the code below to reset your password:",
		code,
	)

	return m.sendHTML(to, "Your Password Reset Code", htmlBody)
}

func (m *Mailer) sendHTML(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

func codeEmailBody(title, name, intro, code string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #333333; text-align: center;">%s</h2>
		<p style="color: #555555; font-size: 16px;">Hi <strong>%s</strong>,</p>
		<p style="color: #555555; font-size: 16px;">%s</p>
		<div style="text-align: center; margin: 20px 0;">
			<span style="font-size: 24px; color: #4CAF50; font-weight: bold; background: #f2f2f2; padding: 10px 20px; border-radius: 5px;">%s</span>
		</div>
		<p style="color: #555555; font-size: 16px;">If you didn't request this, please ignore this email.</p>
	</div>
	`, title, name, intro, code)
}

// mailerConfig holds SMTP configuration for sending emails.
type mailerConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// newMailerConfig creates a mailerConfig instance from environment variables.
func newMailerConfig(logger *zerolog.Logger) *mailerConfig {
	cfg, err := env.ParseAs[mailerConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	return &cfg
}

// validate checks if the Mailer configuration is valid.
func (c *mailerConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if c.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
