package domain

// Video Model
type Video struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`        // Opaque identifier
	VideoName   string `gorm:"not null" json:"videoName"`           // Display name
	Description string `gorm:"not null" json:"description"`         // Description text
	VideoURL    string `gorm:"not null" json:"videoUrl"`            // Playback URL
	Length      int    `gorm:"not null" json:"length"`              // Duration in minutes
	LikeCount   int64  `gorm:"not null;default:0" json:"likeCount"` // Total likes
	CreatedAt   int64  `gorm:"autoCreateTime:milli" json:"-"`       // Timestamp of creation in milliseconds
}
