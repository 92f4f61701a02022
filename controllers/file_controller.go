package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/secureshare/secureshare/config"
	"github.com/secureshare/secureshare/middleware"
	"github.com/secureshare/secureshare/models"
	"github.com/secureshare/secureshare/utils"
)

// maxUploadSize caps a single office document upload.
const maxUploadSize = 50 * 1024 * 1024

// FileStore is the metadata store surface the file endpoints need.
type FileStore interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	GetByID(ctx context.Context, id string) (*models.File, error)
	GetByAccessToken(ctx context.Context, token string) (*models.File, error)
	ListByUploader(ctx context.Context, userID string) ([]models.File, error)
	Update(ctx context.Context, id string, fields bson.M) (*models.File, error)
	Delete(ctx context.Context, id string) (*models.File, error)
}

// FileController handles upload, download-link issuance, redemption,
// listing, and deletion of office documents.
type FileController struct {
	files FileStore
}

// NewFileController creates a FileController.
func NewFileController(files FileStore) *FileController {
	return &FileController{files: files}
}

// Upload stores an office document for the ops caller. The extension must be
// allowed and the actual bytes must sniff as the matching OOXML MIME type;
// the declared Content-Type header is recorded but never trusted for
// validation.
func (f *FileController) Upload(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "not authenticated")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "no file uploaded")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !utils.ValidFileExtension(filename) {
		utils.Error(ctx, http.StatusBadRequest, 40031,
			fmt.Sprintf("only %s files are allowed", strings.Join(utils.AllowedExtensions(), ", ")))
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to read file")
		return
	}
	if len(content) > maxUploadSize {
		utils.Error(ctx, http.StatusBadRequest, 40032, "file size exceeds 50MB")
		return
	}

	if detected, ok := utils.ValidFileContent(content); !ok {
		utils.Sugar.Infow("rejected upload with mismatched content",
			"filename", filename, "detected", detected)
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid file content type")
		return
	}

	cfg := config.Get()
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to create upload directory")
		return
	}

	// Randomized prefix prevents collisions and path guessing.
	dstPath := filepath.Join(cfg.UploadDir, uuid.New().String()+"_"+filename)
	if err := os.WriteFile(dstPath, content, 0o644); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to save file")
		return
	}

	record := &models.File{
		Filename:    filename,
		ContentType: header.Header.Get("Content-Type"),
		FileSize:    int64(len(content)),
		FilePath:    dstPath,
		UploadedBy:  user.ID,
	}

	created, err := f.files.Create(ctx.Request.Context(), record)
	if err != nil {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to record file")
		return
	}

	utils.Success(ctx, created)
}

// GenerateDownloadLink issues a fresh access token for the file and returns
// the URL that redeems it. Any previously issued token is superseded.
func (f *FileController) GenerateDownloadLink(ctx *gin.Context) {
	fileID := ctx.Param("file_id")

	if _, err := f.files.GetByID(ctx.Request.Context(), fileID); err != nil {
		if err == models.ErrNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "file not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to load file")
		return
	}

	token, err := utils.GenerateAccessToken()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to generate access token")
		return
	}

	if _, err := f.files.Update(ctx.Request.Context(), fileID, bson.M{"access_token": token}); err != nil {
		if err == models.ErrNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "file not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50036, "failed to store access token")
		return
	}

	downloadLink := fmt.Sprintf("%s/files/download?token=%s", config.Get().BaseURL, token)
	utils.Success(ctx, gin.H{
		"download_link": downloadLink,
		"message":       "success",
	})
}

// Download redeems an access token and streams the blob. The token, not the
// caller's identity, selects the file: any authenticated caller holding a
// live token may download it.
func (f *FileController) Download(ctx *gin.Context) {
	token := strings.TrimSpace(ctx.Query("token"))
	if token == "" {
		utils.Error(ctx, http.StatusBadRequest, 40034, "missing download token")
		return
	}

	file, err := f.files.GetByAccessToken(ctx.Request.Context(), token)
	if err != nil {
		if err == models.ErrNotFound {
			utils.Error(ctx, http.StatusNotFound, 40411, "file not found or access denied")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50037, "failed to resolve download token")
		return
	}

	if _, err := os.Stat(file.FilePath); err != nil {
		utils.Error(ctx, http.StatusNotFound, 40412, "file not found on server")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, file.Filename))
	ctx.Header("Content-Type", file.ContentType)
	ctx.File(file.FilePath)
}

// List returns the caller's own uploads, newest first.
func (f *FileController) List(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40114, "not authenticated")
		return
	}

	files, err := f.files.ListByUploader(ctx.Request.Context(), user.ID.Hex())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50038, "failed to list files")
		return
	}

	utils.Success(ctx, files)
}

// Delete removes a file record and its blob. Blob removal after the record
// is gone is best-effort; a failure is logged but the deletion stands.
func (f *FileController) Delete(ctx *gin.Context) {
	fileID := ctx.Param("file_id")

	file, err := f.files.Delete(ctx.Request.Context(), fileID)
	if err != nil {
		if err == models.ErrNotFound {
			utils.Error(ctx, http.StatusNotFound, 40413, "file not found")
			return
		}
		if file != nil {
			utils.Sugar.Warnw("file record deleted but blob removal failed",
				"file_id", fileID, "path", file.FilePath, "error", err)
			utils.Success(ctx, file)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50039, "failed to delete file")
		return
	}

	utils.Success(ctx, file)
}
