package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yoga_studio/internal/domain"
)

// GormUserStore implements UserStore on top of a GORM handle.
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore wraps the given database handle.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// Create inserts a new user record. Uniqueness of userName, email and token
// is enforced by the database indexes; a violated index surfaces as
// ErrDuplicate. Requires the connection to be opened with TranslateError.
func (s *GormUserStore) Create(ctx context.Context, user *domain.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// FindByUserName looks a user up by their unique identity.
func (s *GormUserStore) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("user_name = ?", userName).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail looks a user up by email.
func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByToken resolves a bearer token to its user. The empty token never
// matches, so users whose token was cleared cannot be resolved.
func (s *GormUserStore) FindByToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var user domain.User
	err := s.db.WithContext(ctx).Where("access_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RotateToken replaces the stored token in a single UPDATE, so concurrent
// lookups see either the old token or the new one, never a partial state.
func (s *GormUserStore) RotateToken(ctx context.Context, userID, token string) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Update("access_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
