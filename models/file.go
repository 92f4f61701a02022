package models

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// File records an uploaded document and its on-disk blob. The access token,
// when present, is the capability that authorizes download of this file;
// regenerating it supersedes the previous value.
type File struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Filename    string             `bson:"filename" json:"filename"`
	ContentType string             `bson:"content_type" json:"content_type"`
	FileSize    int64              `bson:"file_size" json:"file_size"`
	FilePath    string             `bson:"file_path" json:"file_path"`
	UploadedBy  primitive.ObjectID `bson:"uploaded_by" json:"uploaded_by"`
	AccessToken *string            `bson:"access_token,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// FileModel is the file metadata store backed by the files collection.
type FileModel struct {
	col *mongo.Collection
}

// NewFileModel creates a FileModel bound to the given database.
func NewFileModel(db *mongo.Database) *FileModel {
	return &FileModel{col: db.Collection("files")}
}

// Create inserts a new file record and returns the stored document.
func (m *FileModel) Create(ctx context.Context, file *File) (*File, error) {
	now := time.Now().UTC()
	file.ID = primitive.NewObjectID()
	file.CreatedAt = now
	file.UpdatedAt = now

	if _, err := m.col.InsertOne(ctx, file); err != nil {
		return nil, err
	}
	return m.GetByID(ctx, file.ID.Hex())
}

// GetByID returns the file record with the given hex object id.
func (m *FileModel) GetByID(ctx context.Context, id string) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var file File
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// GetByAccessToken resolves a download capability token to its file record.
// Superseded tokens match nothing and report ErrNotFound.
func (m *FileModel) GetByAccessToken(ctx context.Context, token string) (*File, error) {
	var file File
	err := m.col.FindOne(ctx, bson.M{"access_token": token}).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// ListByUploader returns the uploader's files, newest first.
func (m *FileModel) ListByUploader(ctx context.Context, userID string) ([]File, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	cur, err := m.col.Find(ctx,
		bson.M{"uploaded_by": oid},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	files := []File{}
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Update applies a partial $set to the record and returns the updated document.
// Setting access_token here overwrites any previous token; the unique sparse
// index keeps a live token mapped to exactly one file.
func (m *FileModel) Update(ctx context.Context, id string, fields bson.M) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	fields["updated_at"] = time.Now().UTC()

	var file File
	err = m.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// Delete removes the record and then the backing blob, returning the
// pre-deletion record. The record goes first; blob removal is best-effort
// cleanup and its failure is reported to the caller for logging, not rolled
// back — the filesystem offers no atomicity to promise.
func (m *FileModel) Delete(ctx context.Context, id string) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var file File
	err = m.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if file.FilePath != "" {
		if err := os.Remove(file.FilePath); err != nil && !os.IsNotExist(err) {
			return &file, err
		}
	}
	return &file, nil
}
