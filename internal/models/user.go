package models

import "time"

// User represents a registered member of the site.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Bio          string    `json:"bio"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Everything a user owns goes with them when the account is deleted.
	Reviews      []Review     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Lists        []List       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	LikedGames   []LikedGame  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	GameStatuses []GameStatus `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
