package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Default values applied when a user is created without explicit
// profile fields.
const (
	DefaultPicture = "/avatar.png"
	RoleClient     = "client"
	RoleAdmin      = "admin"
)

// User represents a verified account in the authentication system.
// A user holds a password hash, a linked Google identity, or both;
// federation-only accounts have an empty password hash.
type User struct {
	ID                         bson.ObjectID `bson:"_id,omitempty"`
	GoogleID                   string        `bson:"google_id,omitempty"`
	Email                      string        `bson:"email"`
	EmailVerified              bool          `bson:"email_verified"`
	PasswordHash               string        `bson:"password_hash,omitempty"`
	Name                       string        `bson:"name"`
	Address                    string        `bson:"address,omitempty"`
	Picture                    string        `bson:"picture"`
	PhoneNumber                string        `bson:"phone_number,omitempty"`
	CountryCode                string        `bson:"country_code,omitempty"`
	Roles                      []string      `bson:"roles"`
	PasswordResetCode          string        `bson:"password_reset_code"`
	PasswordResetCodeExpiresAt time.Time     `bson:"password_reset_code_expires_at"`
	CreatedAt                  time.Time     `bson:"created_at"`
	UpdatedAt                  time.Time     `bson:"updated_at"`
}
