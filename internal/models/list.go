package models

import (
	"time"

	"gameboxd/backend/internal/rawg"
)

// List is a named collection of games curated by one user. Lists are private
// until their owner toggles them public.
type List struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	IsPublic  bool      `json:"is_public" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []ListItem `json:"items,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

// ListItem is a single game's membership in a list. A game can appear at most
// once per list.
type ListItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ListID    uint      `json:"list_id" gorm:"not null;uniqueIndex:idx_list_items_list_game"`
	GameID    string    `json:"game_id" gorm:"size:64;not null;uniqueIndex:idx_list_items_list_game"`
	CreatedAt time.Time `json:"created_at"`

	// Minimal catalog record, attached at read time; never persisted.
	Game *rawg.GameRef `json:"game,omitempty" gorm:"-"`
}
