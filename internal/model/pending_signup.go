package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PendingSignup represents an unconfirmed registration awaiting email
// code verification. At most one pending signup exists per email;
// re-requesting a code overwrites the existing record. A successful
// signup confirmation consumes and deletes it.
type PendingSignup struct {
	ID                        bson.ObjectID `bson:"_id,omitempty"`
	Email                     string        `bson:"email"`
	Name                      string        `bson:"name"`
	PasswordHash              string        `bson:"password_hash"`
	VerificationCode          string        `bson:"verification_code"`
	VerificationCodeExpiresAt time.Time     `bson:"verification_code_expires_at"`
	CreatedAt                 time.Time     `bson:"created_at"`
	UpdatedAt                 time.Time     `bson:"updated_at"`
}
