package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/secureshare/secureshare/models"
	"github.com/secureshare/secureshare/utils"
)

// ContextUserKey is the key used to store the resolved *models.User in Gin context.
const ContextUserKey = "current_user"

// UserResolver looks up an account by the email carried in a session token.
type UserResolver interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthRequired ensures the request carries a valid bearer token that
// resolves to a verified account. The resolved user is stored in the
// context for downstream handlers.
func AuthRequired(users UserResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid or expired token")
			ctx.Abort()
			return
		}

		user, err := users.GetByEmail(ctx.Request.Context(), claims.Subject)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "could not resolve user")
			ctx.Abort()
			return
		}
		if !user.IsVerified {
			utils.Error(ctx, http.StatusUnauthorized, 40106, "email not verified")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

// OpsRequired rejects callers without the elevated role. It must run after
// AuthRequired in the chain.
func OpsRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40107, "not authenticated")
			ctx.Abort()
			return
		}
		if !user.IsOpsUser {
			utils.Error(ctx, http.StatusForbidden, 40301, "operation not permitted")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CurrentUser retrieves the authenticated user placed by AuthRequired.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	v, ok := ctx.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
