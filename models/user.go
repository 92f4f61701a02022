package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when signup collides with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// User represents an account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"email" json:"email"`
	FullName          string             `bson:"full_name" json:"full_name"`
	HashedPassword    string             `bson:"hashed_password" json:"-"`
	IsVerified        bool               `bson:"is_verified" json:"is_verified"`
	IsOpsUser         bool               `bson:"is_ops_user" json:"is_ops_user"`
	VerificationToken *string            `bson:"verification_token" json:"-"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserModel is the credential store backed by the users collection.
type UserModel struct {
	col *mongo.Collection
}

// NewUserModel creates a UserModel bound to the given database.
func NewUserModel(db *mongo.Database) *UserModel {
	return &UserModel{col: db.Collection("users")}
}

// Create inserts a new account. New accounts always start unverified and
// unprivileged regardless of the fields supplied by the caller.
func (m *UserModel) Create(ctx context.Context, user *User) (*User, error) {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.IsVerified = false
	user.IsOpsUser = false
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := m.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return m.GetByID(ctx, user.ID.Hex())
}

// GetByEmail returns the account with the given email.
func (m *UserModel) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := m.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID returns the account with the given hex object id.
func (m *UserModel) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var user User
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Verify redeems a verification token: in one atomic update it marks the
// matching account verified and clears the token so it can never be reused.
// Returns false when no account holds the token (unknown or already spent).
func (m *UserModel) Verify(ctx context.Context, token string) (bool, error) {
	res := m.col.FindOneAndUpdate(ctx,
		bson.M{"verification_token": token},
		bson.M{"$set": bson.M{
			"is_verified":        true,
			"verification_token": nil,
			"updated_at":         time.Now().UTC(),
		}},
	)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update applies a partial $set to the account and returns the updated record.
func (m *UserModel) Update(ctx context.Context, id string, fields bson.M) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	fields["updated_at"] = time.Now().UTC()

	var user User
	err = m.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MakeOps grants the elevated role to the account with the given email.
// Elevation is one-way; there is no operation that revokes it.
func (m *UserModel) MakeOps(ctx context.Context, email string) (*User, error) {
	var user User
	err := m.col.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"is_ops_user": true,
			"updated_at":  time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
