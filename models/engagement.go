package models

import "time"

// Favorite encodes "user favorited place" purely by existence. Rows are
// created and deleted by the toggle, never updated.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_user_place"`
	PlaceID   string    `json:"place_id" gorm:"not null;uniqueIndex:idx_favorite_user_place"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating holds one user's 1-5 star rating of a place. Unlike Favorite it
// carries a value, so it supports update as well as create/delete.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_user_place"`
	PlaceID   string    `json:"place_id" gorm:"not null;uniqueIndex:idx_rating_user_place"`
	Value     int       `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
