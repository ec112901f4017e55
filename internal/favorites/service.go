// Package favorites maintains each user's set of favorite catalog videos.
package favorites

import (
	"context"

	"github.com/sirupsen/logrus"

	"yoga_studio/internal/domain"
	"yoga_studio/internal/store"
)

// Service applies set semantics to the favorites relation, resolving every
// video reference through the catalog before touching the relation.
type Service struct {
	favorites store.FavoriteStore
	videos    store.VideoStore
}

// NewService builds a Service from its dependencies.
func NewService(favorites store.FavoriteStore, videos store.VideoStore) *Service {
	return &Service{favorites: favorites, videos: videos}
}

// Add marks a video as a favorite of the user. Adding a video that is already
// a favorite changes nothing. Returns store.ErrNotFound when the video does
// not exist in the catalog.
func (s *Service) Add(ctx context.Context, userID, videoID string) (*domain.Video, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Add(ctx, userID, videoID); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"video_id": videoID,
	}).Info("Favorite added")
	return video, nil
}

// Remove unmarks a video. Removing a video that was never a favorite is a
// no-op; the resolved video is returned either way so the response shape
// stays uniform.
func (s *Service) Remove(ctx context.Context, userID, videoID string) (*domain.Video, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Remove(ctx, userID, videoID); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"video_id": videoID,
	}).Info("Favorite removed")
	return video, nil
}

// List materializes the user's favorites in insertion order. Ids that no
// longer resolve in the catalog are skipped rather than failing the call.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Video, error) {
	ids, err := s.favorites.ListVideoIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Video{}, nil
	}
	resolved, err := s.videos.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Video, len(resolved))
	for _, v := range resolved {
		byID[v.ID] = v
	}
	// Reassemble in insertion order; the batch lookup does not preserve it.
	videos := make([]domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}
