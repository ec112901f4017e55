package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"yoga_studio/internal/domain"
	"yoga_studio/internal/favorites"
	"yoga_studio/internal/middleware"
)

// requireOwner enforces the ownership check: the authenticated user must be
// the user named in the path. Returns nil after writing 401/403 on failure.
func requireOwner(c *gin.Context) *domain.User {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return nil
	}
	if user.ID != c.Param("userId") {
		// Authenticated, but for somebody else's favorites
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return nil
	}
	return user
}

// AddFavoriteHandler marks a video as a favorite of the path user.
func AddFavoriteHandler(favSvc *favorites.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := requireOwner(c) // Ownership check before any mutation
		if user == nil {
			return
		}
		video, err := favSvc.Add(c.Request.Context(), user.ID, c.Param("videoId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, video)
	}
}

// RemoveFavoriteHandler unmarks a video for the path user.
func RemoveFavoriteHandler(favSvc *favorites.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := requireOwner(c) // Ownership check before any mutation
		if user == nil {
			return
		}
		video, err := favSvc.Remove(c.Request.Context(), user.ID, c.Param("videoId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, video)
	}
}

// ListFavoritesHandler returns the path user's favorites in insertion order.
func ListFavoritesHandler(favSvc *favorites.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := requireOwner(c)
		if user == nil {
			return
		}
		videos, err := favSvc.List(c.Request.Context(), user.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, videos)
	}
}
