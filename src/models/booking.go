package models

import (
	"bookify/src/types"
	"time"
)

type Booking struct {
	ID               uint                `gorm:"primarykey" json:"id"`
	BookingNumber    string              `gorm:"size:20;uniqueIndex;not null" json:"booking_number"`
	UserID           uint                `gorm:"index;not null" json:"user_id"`
	RoomID           uint                `gorm:"index:idx_bookings_room_stay;not null" json:"room_id"`
	RoomTypeID       uint                `gorm:"not null" json:"room_type_id"`
	CheckIn          time.Time           `gorm:"type:date;index:idx_bookings_room_stay;not null" json:"check_in"`
	CheckOut         time.Time           `gorm:"type:date;index:idx_bookings_room_stay;not null" json:"check_out"`
	Nights           int                 `gorm:"not null" json:"nights"`
	TotalAmount      float64             `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Currency         string              `gorm:"size:3;not null" json:"currency"`
	Status           types.BookingStatus `gorm:"type:smallint;index;not null" json:"status"`
	PaymentReference *string             `gorm:"size:255" json:"payment_reference,omitempty"`

	User     *User     `json:"user,omitempty"`
	Room     *Room     `json:"room,omitempty"`
	RoomType *RoomType `json:"room_type,omitempty"`
	Payments []Payment `gorm:"constraint:OnDelete:CASCADE" json:"payments,omitempty"`

	types.Timestamps
}
