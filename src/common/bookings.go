package common

import (
	"bookify/src/db"
	"bookify/src/models"
	"bookify/src/types"
	"bookify/src/utils"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const bookingNumberAttempts = 3

var generateBookingNumber = utils.GenerateBookingNumber

// pg exclusion_violation, raised by the stay overlap constraint.
const pgExclusionViolation = "23P01"

// CreateBookings turns every cart item into its own PendingPayment booking.
// All rows are written in one transaction or none are.
func CreateBookings(userID uint, cart *Cart) ([]models.Booking, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, types.ErrEmptyCart
	}
	db := db.GetDb()
	now := time.Now()
	today := utils.DateOf(now)
	var bookings []models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		bookings = make([]models.Booking, 0, len(cart.Items))
		rooms, err := lockRooms(tx, cart)
		if err != nil {
			return err
		}
		for _, item := range cart.Items {
			room, ok := rooms[item.RoomID]
			if !ok {
				return types.ErrRoomNotFound
			}
			if err := ValidateStay(item.CheckIn, item.CheckOut, today); err != nil {
				return err
			}
			if !room.IsActive {
				return types.ErrRoomUnavailable
			}
		}
		available, err := ValidateCartAvailability(tx, cart)
		if err != nil {
			return err
		}
		if !available {
			return types.ErrRoomUnavailable
		}
		for _, item := range cart.Items {
			room := rooms[item.RoomID]
			booking := models.Booking{
				UserID:      userID,
				RoomID:      room.ID,
				RoomTypeID:  room.RoomTypeID,
				CheckIn:     utils.DateOf(item.CheckIn),
				CheckOut:    utils.DateOf(item.CheckOut),
				Nights:      utils.NightsBetween(item.CheckIn, item.CheckOut),
				TotalAmount: item.SubTotal,
				Currency:    cart.Currency,
				Status:      types.BOOKING_PENDING_PAYMENT,
			}
			if err := createWithBookingNumber(tx, &booking, now); err != nil {
				return err
			}
			if err := recordTransition(tx, booking.ID, 0, booking.Status, models.TRAIL_INITIATOR_USER); err != nil {
				return err
			}
			bookings = append(bookings, booking)
		}
		return nil
	})
	if err != nil {
		return nil, mapBookingError(err, userID)
	}
	return bookings, nil
}

// ValidateCartAvailability reports whether every item can still be booked.
// Each item is checked against blocking bookings already stored through tx
// and against the earlier items of the same cart.
func ValidateCartAvailability(tx *gorm.DB, cart *Cart) (bool, error) {
	if cart == nil {
		return true, nil
	}
	for i, item := range cart.Items {
		available, err := IsRoomAvailable(tx, item.RoomID, item.CheckIn, item.CheckOut, nil)
		if err != nil {
			return false, err
		}
		if !available {
			log.Printf("Room %s is no longer available for %s - %s\n", item.RoomNumber, utils.FormatDate(item.CheckIn), utils.FormatDate(item.CheckOut))
			return false, nil
		}
		for _, prev := range cart.Items[:i] {
			if prev.RoomID == item.RoomID && prev.CheckIn.Before(item.CheckOut) && item.CheckIn.Before(prev.CheckOut) {
				log.Printf("Room %s is booked twice in one cart for %s - %s\n", item.RoomNumber, utils.FormatDate(item.CheckIn), utils.FormatDate(item.CheckOut))
				return false, nil
			}
		}
	}
	return true, nil
}

// lockRooms loads the cart's rooms, holding row locks on postgres until commit.
func lockRooms(tx *gorm.DB, cart *Cart) (map[uint]models.Room, error) {
	seen := map[uint]bool{}
	ids := []uint{}
	for _, item := range cart.Items {
		if !seen[item.RoomID] {
			seen[item.RoomID] = true
			ids = append(ids, item.RoomID)
		}
	}
	q := tx.Model(&models.Room{}).Where("id IN ?", ids).Order("id")
	if db.IsPostgres(tx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}
	return byID, nil
}

// createWithBookingNumber inserts booking under a fresh number, retrying on
// a unique collision inside a savepoint.
func createWithBookingNumber(tx *gorm.DB, booking *models.Booking, now time.Time) error {
	for attempt := 1; attempt <= bookingNumberAttempts; attempt++ {
		booking.ID = 0
		booking.BookingNumber = generateBookingNumber(now)
		savepoint := fmt.Sprintf("booking_number_%d", attempt)
		if err := tx.SavePoint(savepoint).Error; err != nil {
			return err
		}
		err := tx.Create(booking).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		log.Printf("Booking number %s already taken (attempt %d)\n", booking.BookingNumber, attempt)
		if err := tx.RollbackTo(savepoint).Error; err != nil {
			return err
		}
	}
	return types.ErrBookingNumberTaken
}

func recordTransition(tx *gorm.DB, bookingID uint, from, to types.BookingStatus, initiator string) error {
	return tx.Create(&models.BookingTrail{
		BookingID:  bookingID,
		FromStatus: from,
		ToStatus:   to,
		Initiator:  initiator,
	}).Error
}

func mapBookingError(err error, userID uint) error {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		log.Printf("Overlapping stay rejected by database for user %d: %s\n", userID, pgErr.Message)
		return types.ErrRoomUnavailable
	}
	log.Printf("Error creating bookings for user %d: %s\n", userID, err.Error())
	return types.ErrPersistence
}

// GetBookingByNumber loads a booking by its public number.
func GetBookingByNumber(tx *gorm.DB, bookingNumber string) (*models.Booking, error) {
	var booking models.Booking
	err := tx.
		Model(&models.Booking{}).
		Where("booking_number = ?", bookingNumber).
		First(&booking).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// BookingNumbers lists the public numbers of bookings in order.
func BookingNumbers(bookings []models.Booking) []string {
	numbers := make([]string, 0, len(bookings))
	for _, b := range bookings {
		numbers = append(numbers, b.BookingNumber)
	}
	return numbers
}
