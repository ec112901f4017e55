package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yoga_studio/internal/domain"
)

// GormVideoStore implements VideoStore on top of a GORM handle.
type GormVideoStore struct {
	db *gorm.DB
}

// NewGormVideoStore wraps the given database handle.
func NewGormVideoStore(db *gorm.DB) *GormVideoStore {
	return &GormVideoStore{db: db}
}

// Create inserts a new catalog video.
func (s *GormVideoStore) Create(ctx context.Context, video *domain.Video) error {
	return s.db.WithContext(ctx).Create(video).Error
}

// Delete removes a video by id; deleting an absent id is a no-op.
func (s *GormVideoStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Video{}).Error
}

// FindByID looks a video up by id.
func (s *GormVideoStore) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	var video domain.Video
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// FindByIDs resolves a batch of ids in one query. Ids with no matching row
// are simply absent from the result.
func (s *GormVideoStore) FindByIDs(ctx context.Context, ids []string) ([]domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []domain.Video
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// ListRecent returns the newest videos, most recent first.
func (s *GormVideoStore) ListRecent(ctx context.Context, limit int) ([]domain.Video, error) {
	var videos []domain.Video
	err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// ListShorterThan returns videos shorter than maxLength minutes.
func (s *GormVideoStore) ListShorterThan(ctx context.Context, maxLength int) ([]domain.Video, error) {
	var videos []domain.Video
	err := s.db.WithContext(ctx).Where("length < ?", maxLength).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// IncrementLikes bumps the like counter in a single UPDATE so concurrent
// likes never lose an increment.
func (s *GormVideoStore) IncrementLikes(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		Update("like_count", gorm.Expr("like_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
