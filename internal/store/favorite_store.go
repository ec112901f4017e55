package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yoga_studio/internal/domain"
)

// GormFavoriteStore implements FavoriteStore on top of a GORM handle.
type GormFavoriteStore struct {
	db *gorm.DB
}

// NewGormFavoriteStore wraps the given database handle.
func NewGormFavoriteStore(db *gorm.DB) *GormFavoriteStore {
	return &GormFavoriteStore{db: db}
}

// Add inserts the edge with an on-conflict-do-nothing clause, which is the
// database-side add-to-set: two devices adding the same video concurrently
// still leave exactly one row.
func (s *GormFavoriteStore) Add(ctx context.Context, userID, videoID string) error {
	fav := domain.Favorite{UserID: userID, VideoID: videoID}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

// Remove deletes every row for the edge in one statement; deleting nothing is
// not an error.
func (s *GormFavoriteStore) Remove(ctx context.Context, userID, videoID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&domain.Favorite{}).Error
}

// ListVideoIDs returns the user's favorite video ids ordered by insertion.
func (s *GormFavoriteStore) ListVideoIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Order("id asc").
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
