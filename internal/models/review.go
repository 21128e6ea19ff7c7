package models

import (
	"time"

	"gameboxd/backend/internal/rawg"
)

// Review is a user's rating and write-up for a single game. Ratings are
// authored on a 0-10 scale; the display layer divides by two.
type Review struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UserID  uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_user_game"`
	GameID  string `json:"game_id" gorm:"size:64;not null;index;uniqueIndex:idx_reviews_user_game"`
	Rating  int    `json:"rating" gorm:"not null;check:rating >= 0 AND rating <= 10"`
	Comment string `json:"comment" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
	// Nil until the review is edited for the first time.
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Minimal catalog record, attached at read time; never persisted.
	Game *rawg.GameRef `json:"game,omitempty" gorm:"-"`
}
