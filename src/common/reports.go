package common

import (
	"bookify/src/config"
	"bookify/src/db"
	"bookify/src/models"
	"bookify/src/types"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const adminPageSize = 20

type PagedBookings struct {
	Items    []models.Booking `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

var exportHeader = []string{"BookingNumber", "UserEmail", "RoomNumber", "CheckIn", "CheckOut", "Nights", "TotalAmount", "Status", "CreatedAt"}

func bookingFilters(filter *types.BookingsQueryFilters) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter == nil {
			return db
		}
		if filter.Status != "" {
			if status, err := types.ParseBookingStatus(filter.Status); err == nil {
				db = db.Where("bookings.status = ?", status)
			}
		}
		if text := strings.TrimSpace(filter.Search); text != "" {
			db = db.Where("bookings.booking_number LIKE ?", "%"+strings.ToUpper(text)+"%")
		}
		return db
	}
}

// ListBookings pages through all bookings, newest first.
func ListBookings(filter *types.BookingsQueryFilters) (*PagedBookings, error) {
	page := 1
	if filter != nil && filter.Page > 0 {
		page = filter.Page
	}
	db := db.GetDb()
	q := db.Model(&models.Booking{}).Scopes(bookingFilters(filter)).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("Error counting bookings: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	var bookings []models.Booking
	if err := q.
		Preload("User").
		Preload("Room").
		Preload("RoomType").
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * adminPageSize).
		Limit(adminPageSize).
		Find(&bookings).
		Error; err != nil {
		log.Printf("Error listing bookings: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	return &PagedBookings{Items: bookings, Total: total, Page: page, PageSize: adminPageSize}, nil
}

// ExportFileName is bookings_YYYYMMDD.csv for the given day.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("bookings_%s.csv", now.UTC().Format("20060102"))
}

// WriteBookingsCSV writes one row per booking under the export header.
func WriteBookingsCSV(w io.Writer, bookings []models.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, b := range bookings {
		email, room := "", ""
		if b.User != nil {
			email = b.User.Email
		}
		if b.Room != nil {
			room = b.Room.RoomNumber
		}
		row := []string{
			b.BookingNumber,
			email,
			room,
			b.CheckIn.UTC().Format(config.DATE_FORMAT),
			b.CheckOut.UTC().Format(config.DATE_FORMAT),
			strconv.Itoa(b.Nights),
			strconv.FormatFloat(b.TotalAmount, 'f', 2, 64),
			b.Status.String(),
			b.CreatedAt.UTC().Format(config.CSV_TIMESTAMP_FORMAT),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportBookingsCSV streams every booking matching filter as CSV.
func ExportBookingsCSV(w io.Writer, filter *types.BookingsQueryFilters) error {
	db := db.GetDb()
	var bookings []models.Booking
	if err := db.
		Model(&models.Booking{}).
		Scopes(bookingFilters(filter)).
		Preload("User").
		Preload("Room").
		Order("created_at DESC").
		Order("id DESC").
		Find(&bookings).
		Error; err != nil {
		log.Printf("Error exporting bookings: %s\n", err.Error())
		return types.ErrPersistence
	}
	return WriteBookingsCSV(w, bookings)
}

type StatusCount struct {
	Status     string  `json:"status"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type DashboardStats struct {
	TotalBookings     int64            `json:"total_bookings"`
	ConfirmedBookings int64            `json:"confirmed_bookings"`
	PendingBookings   int64            `json:"pending_bookings"`
	TotalRevenue      float64          `json:"total_revenue"`
	TotalRooms        int64            `json:"total_rooms"`
	ActiveRooms       int64            `json:"active_rooms"`
	OccupancyRate     float64          `json:"occupancy_rate"`
	TotalUsers        int64            `json:"total_users"`
	StatusBreakdown   []StatusCount    `json:"status_breakdown"`
	RecentBookings    []models.Booking `json:"recent_bookings"`
}

// GetDashboardStats summarises bookings and rooms. Revenue counts confirmed
// bookings only; occupancy is the share of active rooms held for tonight.
func GetDashboardStats(today time.Time) (*DashboardStats, error) {
	db := db.GetDb()
	stats := DashboardStats{StatusBreakdown: []StatusCount{}}
	err := db.Transaction(func(tx *gorm.DB) error {
		var rows []struct {
			Status types.BookingStatus
			Count  int64
			Amount float64
		}
		if err := tx.
			Model(&models.Booking{}).
			Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount").
			Group("status").
			Scan(&rows).
			Error; err != nil {
			return err
		}
		counts := map[types.BookingStatus]int64{}
		for _, r := range rows {
			counts[r.Status] = r.Count
			stats.TotalBookings += r.Count
			if r.Status == types.BOOKING_CONFIRMED {
				stats.TotalRevenue += r.Amount
			}
		}
		stats.ConfirmedBookings = counts[types.BOOKING_CONFIRMED]
		stats.PendingBookings = counts[types.BOOKING_PENDING_PAYMENT]
		for _, s := range types.BookingStatuses() {
			pct := 0.0
			if stats.TotalBookings > 0 {
				pct = math.Round(float64(counts[s])/float64(stats.TotalBookings)*1000) / 10
			}
			stats.StatusBreakdown = append(stats.StatusBreakdown, StatusCount{Status: s.String(), Count: counts[s], Percentage: pct})
		}

		if err := tx.Model(&models.Room{}).Count(&stats.TotalRooms).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Room{}).Where("is_active = ?", true).Count(&stats.ActiveRooms).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return err
		}
		occupied, err := BookedRoomIDs(tx, today, today.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		if stats.ActiveRooms > 0 {
			stats.OccupancyRate = math.Round(float64(len(occupied))/float64(stats.ActiveRooms)*1000) / 10
		}
		return tx.
			Model(&models.Booking{}).
			Preload("User").
			Preload("Room").
			Order("created_at DESC").
			Order("id DESC").
			Limit(5).
			Find(&stats.RecentBookings).
			Error
	})
	if err != nil {
		log.Printf("Error computing dashboard stats: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	stats.TotalRevenue = math.Round(stats.TotalRevenue*100) / 100
	return &stats, nil
}
