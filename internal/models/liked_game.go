package models

import "time"

// LikedGame marks a game as liked by a user. Presence of the row means
// "liked"; unliking deletes it.
type LikedGame struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_liked_games_user_game"`
	GameID    string    `json:"game_id" gorm:"size:64;not null;uniqueIndex:idx_liked_games_user_game"`
	CreatedAt time.Time `json:"created_at"`
}
