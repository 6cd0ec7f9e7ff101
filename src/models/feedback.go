package models

import "bookify/src/types"

type RoomFeedback struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	UserID     uint   `gorm:"index;not null" json:"user_id"`
	RoomID     uint   `gorm:"index;not null" json:"room_id"`
	Comment    string `gorm:"size:1000;not null" json:"comment"`
	Rating     int    `gorm:"not null" json:"rating"`
	IsApproved bool   `gorm:"default:false;not null" json:"is_approved"`

	User *User `json:"user,omitempty"`
	Room *Room `json:"room,omitempty"`

	types.Timestamps
}
