// Package api holds the Gin handlers, one closure per route with its
// dependencies injected.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"yoga_studio/internal/auth"
	"yoga_studio/internal/store"
)

// writeError translates a service error into the boundary status taxonomy:
// validation 400, missing credentials 401, unknown record 404, anything else
// is treated as a store failure and answered 503. Nothing escapes as a panic.
func writeError(c *gin.Context, err error) {
	var vErr *auth.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		logrus.WithField("error", err.Error()).Error("Store operation failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable at the moment"})
	}
}
