package common

import (
	"bookify/src/db"
	"bookify/src/models"
	"bookify/src/models/scopes"
	"bookify/src/types"
	"bookify/src/utils"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

// ApplyLazyCompletions marks blocking bookings whose check-out date is before
// today as Completed. It returns the updated slice and the ids it changed.
func ApplyLazyCompletions(bookings []models.Booking, today time.Time) ([]models.Booking, []uint) {
	today = utils.DateOf(today)
	out := make([]models.Booking, len(bookings))
	copy(out, bookings)
	var changed []uint
	for i := range out {
		if isElapsed(&out[i], today) {
			out[i].Status = types.BOOKING_COMPLETED
			changed = append(changed, out[i].ID)
		}
	}
	return out, changed
}

func isElapsed(b *models.Booking, today time.Time) bool {
	return b.Status.IsBlocking() && utils.DateOf(b.CheckOut).Before(today)
}

// GetUserBookings returns the user's bookings, newest first, after persisting
// any pending lazy completions.
func GetUserBookings(userID uint) ([]models.Booking, error) {
	db := db.GetDb()
	var bookings []models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		var found []models.Booking
		err := tx.
			Model(&models.Booking{}).
			Where("user_id = ?", userID).
			Preload("Room").
			Preload("RoomType").
			Order("created_at DESC").
			Order("id DESC").
			Find(&found).
			Error
		if err != nil {
			return err
		}
		updated, changed := ApplyLazyCompletions(found, utils.Today())
		if err := persistCompletions(tx, changed); err != nil {
			return err
		}
		bookings = updated
		return nil
	})
	if err != nil {
		log.Printf("Error retrieving bookings for user %d: %s\n", userID, err.Error())
		return nil, types.ErrPersistence
	}
	return bookings, nil
}

// persistCompletions writes Completed for ids still in a blocking status.
func persistCompletions(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var current []models.Booking
	if err := tx.
		Model(&models.Booking{}).
		Scopes(scopes.WithIDs(ids...), scopes.BlockingStatus).
		Select("id", "status").
		Find(&current).
		Error; err != nil {
		return err
	}
	for _, b := range current {
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", b.ID).
			Updates(map[string]any{"status": types.BOOKING_COMPLETED, "updated_at": time.Now()}).
			Error; err != nil {
			return err
		}
		if err := recordTransition(tx, b.ID, b.Status, types.BOOKING_COMPLETED, models.TRAIL_INITIATOR_SYSTEM); err != nil {
			return err
		}
	}
	return nil
}

// CompleteElapsedBookings flips every elapsed blocking booking to Completed
// and returns how many changed.
func CompleteElapsedBookings(today time.Time) (int64, error) {
	db := db.GetDb()
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.
			Model(&models.Booking{}).
			Scopes(scopes.BlockingStatus, scopes.ElapsedStay(utils.DateOf(today))).
			Pluck("id", &ids).
			Error; err != nil {
			return err
		}
		if err := persistCompletions(tx, ids); err != nil {
			return err
		}
		affected = int64(len(ids))
		return nil
	})
	return affected, err
}

// CancelBooking cancels the user's own booking. It returns false with the
// reason when the booking cannot be cancelled; an elapsed stay is completed
// instead.
func CancelBooking(bookingID, userID uint) (bool, error) {
	return cancelBooking(bookingID, &userID, models.TRAIL_INITIATOR_USER)
}

// AdminCancelBooking applies the same rules without the ownership check.
func AdminCancelBooking(bookingID uint) (bool, error) {
	return cancelBooking(bookingID, nil, models.TRAIL_INITIATOR_ADMIN)
}

func cancelBooking(bookingID uint, userID *uint, initiator string) (bool, error) {
	db := db.GetDb()
	today := utils.Today()
	var reason error
	err := db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.
			Model(&models.Booking{}).
			Where("id = ?", bookingID).
			First(&booking).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			reason = types.ErrBookingNotFound
			return nil
		}
		if err != nil {
			return err
		}
		if userID != nil && booking.UserID != *userID {
			reason = types.ErrNotOwner
			return nil
		}
		if utils.DateOf(booking.CheckOut).Before(today) && booking.Status.IsBlocking() {
			if err := persistCompletions(tx, []uint{booking.ID}); err != nil {
				return err
			}
			reason = types.ErrBookingCompleted
			return nil
		}
		if !booking.Status.CanTransitionTo(types.BOOKING_CANCELLED) {
			reason = types.ErrBookingNotCancellable
			if booking.Status == types.BOOKING_COMPLETED {
				reason = types.ErrBookingCompleted
			}
			return nil
		}
		res := tx.
			Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Updates(map[string]any{"status": types.BOOKING_CANCELLED, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			reason = types.ErrBookingNotCancellable
			return nil
		}
		return recordTransition(tx, booking.ID, booking.Status, types.BOOKING_CANCELLED, initiator)
	})
	if err != nil {
		log.Printf("Error cancelling booking %d: %s\n", bookingID, err.Error())
		return false, types.ErrPersistence
	}
	if reason != nil {
		return false, reason
	}
	return true, nil
}

// GetBookingForUser loads one booking owned by userID, completing it first if
// its stay has elapsed.
func GetBookingForUser(bookingID, userID uint) (*models.Booking, error) {
	booking, err := getBooking(bookingID, func(b *models.Booking) error {
		if b.UserID != userID {
			return types.ErrNotOwner
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking loads any booking for back-office use.
func GetBooking(bookingID uint) (*models.Booking, error) {
	return getBooking(bookingID, nil)
}

func getBooking(bookingID uint, check func(*models.Booking) error) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	var denied error
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Preload("User").
			Preload("Room").
			Preload("Room.Images").
			Preload("RoomType").
			Preload("Payments").
			First(&booking).
			Error
		if err != nil {
			return err
		}
		if check != nil {
			if denied = check(&booking); denied != nil {
				return nil
			}
		}
		updated, changed := ApplyLazyCompletions([]models.Booking{booking}, utils.Today())
		if err := persistCompletions(tx, changed); err != nil {
			return err
		}
		booking = updated[0]
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrBookingNotFound
	}
	if err != nil {
		log.Printf("Error retrieving booking %d: %s\n", bookingID, err.Error())
		return nil, types.ErrPersistence
	}
	if denied != nil {
		return nil, denied
	}
	return &booking, nil
}
