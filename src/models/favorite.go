package models

import "bookify/src/types"

type FavoriteRoom struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"uniqueIndex:idx_favorite_user_room;not null" json:"user_id"`
	RoomID uint `gorm:"uniqueIndex:idx_favorite_user_room;not null" json:"room_id"`

	Room *Room `json:"room,omitempty"`

	types.Timestamps
}
