package domain

// Favorite Model: one row per user/video edge. The composite unique index is
// what gives the favorites set its no-duplicates guarantee; the auto-increment
// primary key preserves insertion order for listing.
type Favorite struct {
	ID        uint   `gorm:"primaryKey"`                                // Primary key, also the insertion order
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_user_video"` // Foreign key to User
	VideoID   string `gorm:"size:36;not null;uniqueIndex:idx_user_video"` // Foreign key to Video
	CreatedAt int64  `gorm:"autoCreateTime:milli"`                      // Timestamp of creation in milliseconds
}
