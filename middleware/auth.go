package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "motoslot/database/repository/user"
	"motoslot/models"
	"motoslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthMiddleware resolves the calling user from a bearer token. The token
// hash is checked against the redis auth cache first, falling back to the
// users collection; downstream handlers read "userID" and "isAdmin" from the
// context and treat them as trusted.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Validate the token signature and expiration.
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		ctx := context.Background()

		// Auth cache first; a miss or a cache outage falls back to the DB.
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cached, err := authCache.Get(ctx, utils.AuthCachePrefix+computedHash).Result()
			if err == nil {
				userID, role, ok := strings.Cut(cached, "|")
				if ok && userID != "" {
					_ = authCache.Expire(ctx, utils.AuthCachePrefix+computedHash, utils.AuthCacheTTL).Err()
					setCaller(c, &models.User{ID: userID, Role: role})
					c.Next()
					return
				}
			} else if err != redis.Nil {
				utils.GetLogger().Sugar().Warnf("auth cache lookup failed: %v", err)
			}
		}

		usr, err := users.GetByTokenHash(ctx, computedHash)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or user not found"})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, utils.AuthCachePrefix+computedHash, usr.ID+"|"+usr.Role, utils.AuthCacheTTL).Err()
		}

		setCaller(c, usr)
		c.Next()
	}
}

func setCaller(c *gin.Context, u *models.User) {
	c.Set("userID", u.ID)
	c.Set("role", u.Role)
	c.Set("isAdmin", u.IsAdmin())
}
