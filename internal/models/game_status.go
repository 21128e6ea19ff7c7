package models

import "time"

// PlayStatus classifies a user's progress with a game.
type PlayStatus string

const (
	StatusPlaying    PlayStatus = "PLAYING"
	StatusCompleted  PlayStatus = "COMPLETED"
	StatusWantToPlay PlayStatus = "WANT_TO_PLAY"
)

// Valid reports whether s is one of the known play statuses.
func (s PlayStatus) Valid() bool {
	switch s {
	case StatusPlaying, StatusCompleted, StatusWantToPlay:
		return true
	}
	return false
}

// GameStatus holds a user's single play status for a game. Setting a new
// status replaces the existing row for that (user, game) pair.
type GameStatus struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_game_statuses_user_game"`
	GameID    string     `json:"game_id" gorm:"size:64;not null;uniqueIndex:idx_game_statuses_user_game"`
	Status    PlayStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
