package models

import "bookify/src/types"

type RoomType struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	Name          string           `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug          string           `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description   string           `gorm:"type:text" json:"description,omitempty"`
	Capacity      int              `gorm:"not null" json:"capacity"`
	PricePerNight float64          `gorm:"type:decimal(10,2);not null" json:"price_per_night"`
	Amenities     types.StringList `gorm:"type:text" json:"amenities"`

	Rooms []Room `gorm:"foreignKey:RoomTypeID;constraint:OnDelete:RESTRICT" json:"rooms,omitempty"`

	types.Timestamps
}

type Room struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	RoomNumber string `gorm:"size:20;uniqueIndex;not null" json:"room_number"`
	RoomTypeID uint   `gorm:"index;not null" json:"room_type_id"`
	Floor      int    `json:"floor"`
	IsActive   bool   `gorm:"default:true;not null" json:"is_active"`

	RoomType *RoomType   `json:"room_type,omitempty"`
	Images   []RoomImage `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Bookings []Booking   `gorm:"constraint:OnDelete:RESTRICT" json:"-"`

	types.Timestamps
}

// Thumbnail is the first image by sort order, or empty.
func (r *Room) Thumbnail() string {
	if len(r.Images) == 0 {
		return ""
	}
	best := r.Images[0]
	for _, img := range r.Images[1:] {
		if img.SortOrder < best.SortOrder {
			best = img
		}
	}
	return best.URL
}

type RoomImage struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	RoomID    uint   `gorm:"index;not null" json:"room_id"`
	URL       string `gorm:"size:500;not null" json:"url"`
	SortOrder int    `json:"sort_order"`

	types.Timestamps
}
