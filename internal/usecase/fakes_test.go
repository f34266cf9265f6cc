package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gorillasystems/auth-api/internal/config"
	"github.com/gorillasystems/auth-api/internal/model"
	"github.com/gorillasystems/auth-api/internal/repository"
)

// ---- fakes ----

type fakeUserRepo struct {
	byID map[string]*model.User

	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	for _, existing := range f.byID {
		if existing.Email == user.Email {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Picture == "" {
		user.Picture = model.DefaultPicture
	}
	if len(user.Roles) == 0 {
		user.Roles = []string{model.RoleClient}
	}

	copied := *user
	f.byID[user.ID.Hex()] = &copied

	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetUserByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	if googleID == "" {
		return nil, mongo.ErrNoDocuments
	}

	for _, user := range f.byID {
		if user.GoogleID == googleID {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	user, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.GoogleID != nil {
		user.GoogleID = *params.GoogleID
	}
	if params.EmailVerified != nil {
		user.EmailVerified = *params.EmailVerified
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.Picture != nil {
		user.Picture = *params.Picture
	}
	if params.PasswordResetCode != nil {
		user.PasswordResetCode = *params.PasswordResetCode
	}
	if params.PasswordResetCodeExpiresAt != nil {
		user.PasswordResetCodeExpiresAt = *params.PasswordResetCodeExpiresAt
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) seed(user *model.User) *model.User {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	f.byID[user.ID.Hex()] = user

	copied := *user
	return &copied
}

type fakePendingRepo struct {
	byEmail map[string]*model.PendingSignup

	deleteErr error
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{byEmail: make(map[string]*model.PendingSignup)}
}

func (f *fakePendingRepo) Upsert(
	_ context.Context,
	signup *model.PendingSignup,
) (*model.PendingSignup, error) {
	now := time.Now()

	existing, ok := f.byEmail[signup.Email]
	if !ok {
		existing = &model.PendingSignup{
			ID:        bson.NewObjectID(),
			Email:     signup.Email,
			CreatedAt: now,
		}
		f.byEmail[signup.Email] = existing
	}

	existing.Name = signup.Name
	existing.PasswordHash = signup.PasswordHash
	existing.VerificationCode = signup.VerificationCode
	existing.VerificationCodeExpiresAt = signup.VerificationCodeExpiresAt
	existing.UpdatedAt = now

	copied := *existing
	return &copied, nil
}

func (f *fakePendingRepo) GetByEmail(_ context.Context, email string) (*model.PendingSignup, error) {
	signup, ok := f.byEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *signup
	return &copied, nil
}

func (f *fakePendingRepo) DeleteByEmail(_ context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	if _, ok := f.byEmail[email]; !ok {
		return mongo.ErrNoDocuments
	}

	delete(f.byEmail, email)
	return nil
}

type sentMail struct {
	name string
	to   string
	code string
}

type fakeMailer struct {
	verificationSent []sentMail
	resetSent        []sentMail

	err error
}

func (f *fakeMailer) SendVerificationCode(name, to, code string) error {
	if f.err != nil {
		return f.err
	}

	f.verificationSent = append(f.verificationSent, sentMail{name: name, to: to, code: code})
	return nil
}

func (f *fakeMailer) SendPasswordResetCode(name, to, code string) error {
	if f.err != nil {
		return f.err
	}

	f.resetSent = append(f.resetSent, sentMail{name: name, to: to, code: code})
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Code: config.CodeConfig{
			VerificationTTL:  15 * time.Minute,
			PasswordResetTTL: 15 * time.Minute,
		},
	}
}
