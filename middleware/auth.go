// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// JWTAuthStaffMiddleware authenticates API requests against the staff
// member's persisted token hash, with a Redis fast path.
func JWTAuthStaffMiddleware(repo staffRepo.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		staffID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || staffID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + staffID

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil

		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash == computedHash {
					// Refresh TTL on the hot path.
					_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
					setStaffContext(c, tokenString, staffID)
					return
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
				return
			} else if err != redis.Nil {
				zap.L().Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		// Cache miss: query the database.
		staff, err := repo.GetByIDWithProjection(staffID, bson.M{"id": 1, "tokenHash": 1})
		if err != nil || staff == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if staff.TokenHash == "" || staff.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		setStaffContext(c, tokenString, staffID)
	}
}

func setStaffContext(c *gin.Context, tokenString, staffID string) {
	c.Set("staffID", staffID)
	if role, err := utils.ExtractRoleFromToken(tokenString); err == nil {
		c.Set("staffRole", role)
	}
	c.Next()
}

// RequireRole restricts an already-authenticated API route to the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("staffRole")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
