package controllers

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secureshare/secureshare/models"
)

// envelope mirrors utils.JSONResponse for decoding handler output.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// fakeUserStore is an in-memory credential store mirroring UserModel semantics.
type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[user.Email]; exists {
		return nil, models.ErrEmailTaken
	}
	now := time.Now().UTC()
	stored := *user
	stored.ID = primitive.NewObjectID()
	stored.IsVerified = false
	stored.IsOpsUser = false
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.byEmail[stored.Email] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		out := *u
		return &out, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) Verify(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			u.IsVerified = true
			u.VerificationToken = nil
			u.UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) MakeOps(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	u.IsOpsUser = true
	u.UpdatedAt = time.Now().UTC()
	out := *u
	return &out, nil
}

// mustVerificationToken exposes the stored token the way a test would read
// it out of the database after signup.
func (f *fakeUserStore) mustVerificationToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok || u.VerificationToken == nil {
		return ""
	}
	return *u.VerificationToken
}

// fakeFileStore is an in-memory file store mirroring FileModel semantics.
type fakeFileStore struct {
	mu    sync.Mutex
	files map[string]*models.File
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string]*models.File{}}
}

func (f *fakeFileStore) Create(_ context.Context, file *models.File) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	stored := *file
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.files[stored.ID.Hex()] = &stored
	out := stored
	return &out, nil
}

func (f *fakeFileStore) GetByID(_ context.Context, id string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file, ok := f.files[id]; ok {
		out := *file
		return &out, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeFileStore) GetByAccessToken(_ context.Context, token string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range f.files {
		if file.AccessToken != nil && *file.AccessToken == token {
			out := *file
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeFileStore) ListByUploader(_ context.Context, userID string) ([]models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	files := []models.File{}
	for _, file := range f.files {
		if file.UploadedBy.Hex() == userID {
			files = append(files, *file)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

func (f *fakeFileStore) Update(_ context.Context, id string, fields bson.M) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if v, ok := fields["access_token"]; ok {
		token := v.(string)
		file.AccessToken = &token
	}
	file.UpdatedAt = time.Now().UTC()
	out := *file
	return &out, nil
}

func (f *fakeFileStore) Delete(_ context.Context, id string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(f.files, id)
	out := *file
	if out.FilePath != "" {
		if err := os.Remove(out.FilePath); err != nil && !os.IsNotExist(err) {
			return &out, err
		}
	}
	return &out, nil
}
