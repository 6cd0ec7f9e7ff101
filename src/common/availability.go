package common

import (
	"bookify/src/models"
	"bookify/src/models/scopes"
	"time"

	"gorm.io/gorm"
)

// IsRoomAvailable reports whether no blocking booking for roomID overlaps
// [checkIn, checkOut). excludeBookingID drops one booking from consideration.
func IsRoomAvailable(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID *uint) (bool, error) {
	q := tx.
		Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Scopes(scopes.BlockingStatus, scopes.OverlappingStay(checkIn, checkOut))
	if excludeBookingID != nil {
		q = q.Where("id <> ?", *excludeBookingID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// BookedRoomIDs returns every room holding a blocking booking that overlaps
// [checkIn, checkOut).
func BookedRoomIDs(tx *gorm.DB, checkIn, checkOut time.Time) ([]uint, error) {
	var ids []uint
	err := tx.
		Model(&models.Booking{}).
		Scopes(scopes.BlockingStatus, scopes.OverlappingStay(checkIn, checkOut)).
		Distinct().
		Pluck("room_id", &ids).
		Error
	return ids, err
}
