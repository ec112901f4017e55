// Package store wraps the durable database behind narrow interfaces so the
// services above it never touch GORM directly.
package store

import (
	"context"
	"errors"

	"yoga_studio/internal/domain"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

// UserStore persists user credentials and tokens.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUserName(ctx context.Context, userName string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByToken(ctx context.Context, token string) (*domain.User, error)
	// RotateToken atomically replaces the user's access token; the previous
	// token stops resolving as soon as the update commits.
	RotateToken(ctx context.Context, userID, token string) error
}

// FavoriteStore persists the user-to-video favorites relation.
type FavoriteStore interface {
	// Add inserts the edge if absent; adding an existing edge is a no-op.
	Add(ctx context.Context, userID, videoID string) error
	// Remove deletes the edge; removing an absent edge is a no-op.
	Remove(ctx context.Context, userID, videoID string) error
	// ListVideoIDs returns the user's favorite video ids in insertion order.
	ListVideoIDs(ctx context.Context, userID string) ([]string, error)
}

// VideoStore is the catalog gateway: reads for the favorites flow plus the
// catalog's own CRUD surface.
type VideoStore interface {
	Create(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	// FindByIDs resolves the given ids; ids that match nothing are omitted.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Video, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Video, error)
	ListShorterThan(ctx context.Context, maxLength int) ([]domain.Video, error)
	IncrementLikes(ctx context.Context, id string) error
}
