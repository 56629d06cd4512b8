package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware authenticates requests from the Authorization header.
// The token hash is checked against the redis auth cache first and falls
// back to the user store on a miss, so revoked sessions die immediately.
// With optional set, unauthenticated requests pass through anonymously.
func JWTAuthMiddleware(users userRepo.UserRepository, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		if !sessionValid(c.Request.Context(), users, userID, computedHash) {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

// sessionValid compares the presented token hash against the cached one,
// falling back to the stored user record and repopulating the cache.
func sessionValid(ctx context.Context, users userRepo.UserRepository, userID, computedHash string) bool {
	cacheKey := utils.AuthCachePrefix + userID
	authCache := utils.GetAuthCacheClient()

	if cachedHash, err := authCache.Get(ctx, cacheKey).Result(); err == nil {
		return cachedHash == computedHash
	}

	user, err := users.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("Auth lookup failed", zap.String("userID", userID), zap.Error(err))
		return false
	}
	if user == nil || !user.IsActive || user.TokenHash == "" || user.TokenHash != computedHash {
		return false
	}

	if err := authCache.Set(ctx, cacheKey, user.TokenHash, time.Hour).Err(); err != nil {
		utils.GetLogger().Warn("Failed to repopulate auth cache", zap.String("userID", userID), zap.Error(err))
	}
	return true
}
