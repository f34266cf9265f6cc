package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gorillasystems/auth-api/internal/model"
)

// PendingSignupRepository defines the interface for unconfirmed-signup
// database operations.
type PendingSignupRepository interface {
	// Upsert writes the pending signup keyed by email, overwriting the
	// name, password hash, code and expiry of any existing record so
	// that at most one pending signup exists per email.
	Upsert(ctx context.Context, signup *model.PendingSignup) (*model.PendingSignup, error)

	GetByEmail(ctx context.Context, email string) (*model.PendingSignup, error)
	DeleteByEmail(ctx context.Context, email string) error
}

const pendingSignupCollection = "pending_signups"

type pendingSignupMongoRepository struct {
	db *mongo.Database
}

// NewPendingSignupMongoRepository creates a MongoDB-backed pending
// signup repository with a unique index on email.
func NewPendingSignupMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) PendingSignupRepository {
	collection := db.Collection(pendingSignupCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create pending signup indexes")
	}

	return &pendingSignupMongoRepository{db: db}
}

func (r *pendingSignupMongoRepository) Upsert(
	ctx context.Context,
	signup *model.PendingSignup,
) (*model.PendingSignup, error) {
	now := time.Now()

	result := r.db.Collection(pendingSignupCollection).FindOneAndUpdate(
		ctx,
		bson.M{"email": signup.Email},
		bson.M{
			"$set": bson.M{
				"name":                         signup.Name,
				"password_hash":                signup.PasswordHash,
				"verification_code":            signup.VerificationCode,
				"verification_code_expires_at": signup.VerificationCodeExpiresAt,
				"updated_at":                   now,
			},
			"$setOnInsert": bson.M{
				"email":      signup.Email,
				"created_at": now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var updated model.PendingSignup
	if err := result.Decode(&updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *pendingSignupMongoRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*model.PendingSignup, error) {
	result := r.db.Collection(pendingSignupCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var signup model.PendingSignup
	if err := result.Decode(&signup); err != nil {
		return nil, err
	}

	return &signup, nil
}

func (r *pendingSignupMongoRepository) DeleteByEmail(ctx context.Context, email string) error {
	result := r.db.Collection(pendingSignupCollection).FindOneAndDelete(ctx, bson.M{"email": email})
	return result.Err()
}
