package domain

// User Model
type User struct {
	ID          string  `gorm:"primaryKey;size:36" json:"userId"`             // Opaque system-generated identifier
	UserName    string  `gorm:"uniqueIndex;size:20;not null" json:"userName"` // Unique identity, 4-20 characters
	Email       *string `gorm:"uniqueIndex;size:255" json:"email,omitempty"`  // Optional, unique when present
	Password    string  `gorm:"not null" json:"-"`                            // Hashed password, never serialized
	AccessToken string  `gorm:"uniqueIndex;size:256" json:"-"`                // Bearer token, empty means not issued
	IsAdmin     bool    `gorm:"default:false" json:"-"`                       // Grants catalog mutation rights
	CreatedAt   int64   `gorm:"autoCreateTime:milli" json:"-"`                // Timestamp of creation in milliseconds
}
