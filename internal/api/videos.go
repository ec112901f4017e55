package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // ID generation
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library

	"yoga_studio/internal/domain"
	"yoga_studio/internal/store"
	"yoga_studio/internal/utils"
)

const (
	recentVideosLimit   = 8                // Front-page listing size
	shortVideoMaxLength = 15               // Minutes; anything shorter counts as a short video
	videoListCacheKey   = "videos:recent"  // Cache key for the public listing
	videoListCacheTTL   = 60 * time.Second // Listing cache lifetime
)

// VideoRequest is the typed creation body for catalog videos.
type VideoRequest struct {
	VideoName   string `json:"videoName" binding:"required"`   // Name must be provided
	Description string `json:"description" binding:"required"` // Description must be provided
	VideoURL    string `json:"videoUrl" binding:"required"`    // URL must be provided
	Length      int    `json:"length" binding:"required,gt=0"` // Duration in minutes
}

// ListVideosHandler returns the newest videos, served from cache when fresh.
func ListVideosHandler(videos store.VideoStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.Video
		found, err := utils.GetCache(ctx, rdb, videoListCacheKey, &cached) // Try to get from cache
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached listing
			return
		}
		list, err := videos.ListRecent(ctx, recentVideosLimit)
		if err != nil {
			writeError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, videoListCacheKey, list, videoListCacheTTL) // Cache the listing
		c.JSON(http.StatusOK, list)
	}
}

// GetVideoHandler returns one video by id.
func GetVideoHandler(videos store.VideoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		video, err := videos.FindByID(c.Request.Context(), c.Param("id"))
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, video)
	}
}

// ListShortVideosHandler returns videos shorter than fifteen minutes.
func ListShortVideosHandler(videos store.VideoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := videos.ListShorterThan(c.Request.Context(), shortVideoMaxLength)
		if err != nil {
			writeError(c, err)
			return
		}
		if len(list) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No such video found"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// LikeVideoHandler bumps a video's like counter.
func LikeVideoHandler(videos store.VideoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := videos.IncrementLikes(c.Request.Context(), c.Param("id")); err != nil {
			if err == store.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
				return
			}
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// CreateVideoHandler adds a video to the catalog (admin only, enforced by
// middleware upstream).
func CreateVideoHandler(videos store.VideoStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VideoRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		video := domain.Video{
			ID:          uuid.NewString(),
			VideoName:   req.VideoName,
			Description: req.Description,
			VideoURL:    req.VideoURL,
			Length:      req.Length,
		}
		if err := videos.Create(c.Request.Context(), &video); err != nil {
			writeError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"video_id":   video.ID,
			"video_name": video.VideoName,
		}).Info("Video created")
		_ = utils.DeleteCache(c.Request.Context(), rdb, videoListCacheKey) // Invalidate listing cache
		c.JSON(http.StatusOK, video)
	}
}

// DeleteVideoHandler removes a video from the catalog (admin only, enforced
// by middleware upstream). Favorite rows pointing at the deleted id stay
// behind and are skipped when favorites are listed.
func DeleteVideoHandler(videos store.VideoStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := videos.Delete(c.Request.Context(), id); err != nil {
			logrus.WithFields(logrus.Fields{
				"video_id": id,
				"error":    err.Error(),
			}).Error("Video deletion failed")
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, videoListCacheKey) // Invalidate listing cache
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
