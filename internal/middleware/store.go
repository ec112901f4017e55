package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RequireStore rejects requests with 503 while the durable store is
// unreachable, so a store outage surfaces as service-unavailable instead of
// a stream of per-handler failures.
func RequireStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB() // Underlying sql.DB handle
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable at the moment"})
			return
		}
		c.Next()
	}
}
