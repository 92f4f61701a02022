package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secureshare/secureshare/config"
	"github.com/secureshare/secureshare/models"
	"github.com/secureshare/secureshare/utils"
)

// UserStore is the credential store surface the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Verify(ctx context.Context, token string) (bool, error)
	MakeOps(ctx context.Context, email string) (*models.User, error)
}

// AuthController handles signup, email verification, login, and role elevation.
type AuthController struct {
	users UserStore
}

// NewAuthController creates an AuthController.
func NewAuthController(users UserStore) *AuthController {
	return &AuthController{users: users}
}

// Signup registers a new unverified account and sends the verification mail.
func (a *AuthController) Signup(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		FullName string `json:"full_name" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to process password")
		return
	}

	verificationToken, err := utils.GenerateVerificationToken()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to generate verification token")
		return
	}

	user := &models.User{
		Email:             req.Email,
		FullName:          strings.TrimSpace(req.FullName),
		HashedPassword:    hashed,
		VerificationToken: &verificationToken,
	}

	created, err := a.users.Create(ctx.Request.Context(), user)
	if err != nil {
		if err == models.ErrEmailTaken {
			utils.Error(ctx, http.StatusConflict, 40901, "email already registered")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create user")
		return
	}

	verificationURL := fmt.Sprintf("%s/auth/verify-email?token=%s", config.Get().BaseURL, verificationToken)
	if err := utils.SendVerificationEmail(created.Email, verificationURL); err != nil {
		// Signup stands even when mail delivery fails; the token is in the store.
		utils.Sugar.Warnw("failed to send verification email", "email", created.Email, "error", err)
	}

	utils.Success(ctx, created)
}

// VerifyEmail redeems a verification token. A token is single-use: the
// second redemption finds nothing and fails.
func (a *AuthController) VerifyEmail(ctx *gin.Context) {
	token := strings.TrimSpace(ctx.Query("token"))
	if token == "" {
		utils.Error(ctx, http.StatusBadRequest, 40002, "missing verification token")
		return
	}

	ok, err := a.users.Verify(ctx.Request.Context(), token)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to verify email")
		return
	}
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid or expired verification token")
		return
	}

	utils.Success(ctx, gin.H{"message": "email verified successfully"})
}

// Login exchanges form credentials for a bearer token. Unverified accounts
// cannot log in even with correct credentials.
func (a *AuthController) Login(ctx *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(ctx.PostForm("username")))
	password := ctx.PostForm("password")
	if username == "" || password == "" {
		utils.Error(ctx, http.StatusBadRequest, 40003, "username and password are required")
		return
	}

	user, err := a.users.GetByEmail(ctx.Request.Context(), username)
	if err != nil || !utils.CheckPassword(user.HashedPassword, password) {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "incorrect email or password")
		return
	}

	if !user.IsVerified {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "email not verified")
		return
	}

	lifetime := time.Duration(config.Get().AccessTokenExpireMinutes) * time.Minute
	token, err := utils.GenerateSessionToken(user.Email, lifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// MakeOpsUser elevates the target account to the ops role. The route is
// gated so only an existing ops user can reach it.
func (a *AuthController) MakeOpsUser(ctx *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(ctx.Query("email")))
	if email == "" {
		utils.Error(ctx, http.StatusBadRequest, 40004, "missing email")
		return
	}

	user, err := a.users.MakeOps(ctx.Request.Context(), email)
	if err != nil {
		if err == models.ErrNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to elevate user")
		return
	}

	utils.Success(ctx, gin.H{"message": fmt.Sprintf("user %s is now an ops user", user.Email)})
}
