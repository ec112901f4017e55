package middleware

import (
	"context"  // Cache invalidation outside a request
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"yoga_studio/internal/auth"
	"yoga_studio/internal/domain"
	"yoga_studio/internal/utils"
)

// currentUserKey is the Gin context key the resolved user is stored under.
const currentUserKey = "currentUser"

// authCachePrefix namespaces cached token resolutions in Redis.
const authCachePrefix = "auth:token:"

// CurrentUser returns the user the Auth middleware attached to the context.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// bearerToken extracts the token from the Authorization header, empty if the
// header is missing or malformed.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// Auth resolves the bearer token against the credential store on every
// request and attaches the user to the context. Re-resolving each time means
// a token rotated by a fresh login is rejected immediately.
func Auth(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authSvc.Authenticate(c.Request.Context(), bearerToken(c))
		if err != nil {
			// Absent header and unknown token get the same answer
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(currentUserKey, user) // Store resolved user in context
		c.Next()
	}
}

// AuthCacheInvalidator evicts cached token resolutions. Wired into the auth
// service whenever CachedAuth is in use, so a login rotation removes the old
// token's cache entry instead of letting it ride out the TTL.
type AuthCacheInvalidator struct {
	rdb *redis.Client
}

// NewAuthCacheInvalidator wraps the given Redis client.
func NewAuthCacheInvalidator(rdb *redis.Client) *AuthCacheInvalidator {
	return &AuthCacheInvalidator{rdb: rdb}
}

// InvalidateToken drops the cached resolution for the token, if any.
func (i *AuthCacheInvalidator) InvalidateToken(ctx context.Context, token string) error {
	return utils.DeleteCache(ctx, i.rdb, authCachePrefix+token)
}

// cachedIdentity is the cache representation of a resolved token. The domain
// model hides its sensitive fields from JSON, so it cannot round-trip through
// the cache itself.
type cachedIdentity struct {
	ID       string  `json:"id"`
	UserName string  `json:"userName"`
	Email    *string `json:"email"`
	IsAdmin  bool    `json:"isAdmin"`
}

// CachedAuth is the TTL-cached variant of Auth: token resolutions are kept in
// Redis for the given TTL, trading a bounded window where a rotated token is
// still honored for one store read per token per TTL. Cache failures fall
// back to the store.
func CachedAuth(authSvc *auth.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		ctx := c.Request.Context()
		var cached cachedIdentity
		found, err := utils.GetCache(ctx, rdb, authCachePrefix+token, &cached) // Try the cache first
		if err == nil && found {
			c.Set(currentUserKey, &domain.User{
				ID:       cached.ID,
				UserName: cached.UserName,
				Email:    cached.Email,
				IsAdmin:  cached.IsAdmin,
			})
			c.Next()
			return
		}
		user, err := authSvc.Authenticate(ctx, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		entry := cachedIdentity{ID: user.ID, UserName: user.UserName, Email: user.Email, IsAdmin: user.IsAdmin}
		_ = utils.SetCache(ctx, rdb, authCachePrefix+token, entry, ttl) // Cache the resolution
		c.Set(currentUserKey, user)
		c.Next()
	}
}
