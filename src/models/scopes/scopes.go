package scopes

import (
	"bookify/src/types"
	"time"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithIDs(ids ...uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (?)", ids)
	}
}

// BlockingStatus keeps bookings that hold their room.
func BlockingStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status IN (?)", types.BlockingStatuses())
}

// OverlappingStay keeps bookings whose [check_in, check_out) intersects
// [checkIn, checkOut). Shared endpoints do not intersect.
func OverlappingStay(checkIn, checkOut time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	}
}

// ElapsedStay keeps bookings whose check-out date is before today.
func ElapsedStay(today time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("check_out < ?", today)
	}
}

func ActiveRooms(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
