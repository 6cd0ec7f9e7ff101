package models

import (
	"bookify/src/types"
	"time"
)

// BookingTrail records a single status transition of a booking.
type BookingTrail struct {
	ID         uint                `gorm:"primarykey" json:"id"`
	BookingID  uint                `gorm:"index;not null" json:"booking_id"`
	FromStatus types.BookingStatus `gorm:"type:smallint" json:"from_status"`
	ToStatus   types.BookingStatus `gorm:"type:smallint;not null" json:"to_status"`
	Initiator  string              `gorm:"size:50" json:"initiator"`
	CreatedAt  time.Time           `json:"created_at"`
}

const (
	TRAIL_INITIATOR_USER    = "user"
	TRAIL_INITIATOR_ADMIN   = "admin"
	TRAIL_INITIATOR_PAYMENT = "payment"
	TRAIL_INITIATOR_SYSTEM  = "system"
)
