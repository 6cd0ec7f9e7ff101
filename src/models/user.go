package models

import "bookify/src/types"

// User mirrors the account held by the external identity provider.
type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"size:255;index" json:"email,omitempty"`
	Role  string `gorm:"size:20;default:customer" json:"role,omitempty"`

	Bookings []Booking `json:"bookings,omitempty"`

	types.Timestamps
}

func (u *User) IsAdmin() bool {
	return u.Role == types.ROLE_ADMIN
}
