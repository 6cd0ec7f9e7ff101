package common

import (
	"bookify/src/config"
	"bookify/src/db"
	"bookify/src/models"
	"bookify/src/models/scopes"
	"bookify/src/types"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	SORT_POPULAR    = "popular"
	SORT_PRICE_ASC  = "price-asc"
	SORT_PRICE_DESC = "price-desc"
	SORT_RATING     = "rating"
)

type RoomFilter struct {
	CheckIn       time.Time
	CheckOut      time.Time
	TypeID        uint
	PriceMin      float64
	PriceMax      float64
	Guests        int
	Search        string
	FavoritesOnly bool
	UserID        uint
	Sort          string
	Page          int
	PageSize      int
}

type RoomListing struct {
	models.Room
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
	IsFavorite    bool    `json:"is_favorite"`
}

type PagedRooms struct {
	Items      []RoomListing `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	CheckIn    string        `json:"check_in"`
	CheckOut   string        `json:"check_out"`
}

// DefaultStay is tomorrow until the day after.
func DefaultStay(today time.Time) (time.Time, time.Time) {
	return today.AddDate(0, 0, 1), today.AddDate(0, 0, 2)
}

func (f *RoomFilter) normalize(today time.Time) error {
	if f.CheckIn.IsZero() || f.CheckOut.IsZero() {
		f.CheckIn, f.CheckOut = DefaultStay(today)
	}
	if !f.CheckIn.Before(f.CheckOut) {
		return types.ErrInvalidDateRange
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = config.DEFAULT_PAGE_SIZE
	}
	if f.Sort == "" {
		f.Sort = SORT_POPULAR
	}
	return nil
}

// SearchRooms lists active rooms free for the whole stay that match filter.
func SearchRooms(filter RoomFilter, today time.Time) (*PagedRooms, error) {
	if err := filter.normalize(today); err != nil {
		return nil, err
	}
	db := db.GetDb()
	booked, err := BookedRoomIDs(db, filter.CheckIn, filter.CheckOut)
	if err != nil {
		log.Printf("Error computing booked rooms: %s\n", err.Error())
		return nil, types.ErrPersistence
	}

	q := db.
		Model(&models.Room{}).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("rooms.is_active = ?", true)
	if len(booked) > 0 {
		q = q.Where("rooms.id NOT IN ?", booked)
	}
	if filter.TypeID > 0 {
		q = q.Where("rooms.room_type_id = ?", filter.TypeID)
	}
	if filter.PriceMin > 0 {
		q = q.Where("room_types.price_per_night >= ?", filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		q = q.Where("room_types.price_per_night <= ?", filter.PriceMax)
	}
	if filter.Guests > 0 {
		q = q.Where("room_types.capacity >= ?", filter.Guests)
	}
	if text := strings.ToLower(strings.TrimSpace(filter.Search)); text != "" {
		like := "%" + text + "%"
		q = q.Where(
			"LOWER(room_types.name) LIKE ? OR LOWER(room_types.description) LIKE ? OR LOWER(room_types.amenities) LIKE ? OR LOWER(rooms.room_number) LIKE ?",
			like, like, like, like,
		)
	}
	if filter.FavoritesOnly && filter.UserID > 0 {
		q = q.Where("rooms.id IN (SELECT room_id FROM favorite_rooms WHERE user_id = ?)", filter.UserID)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("Error counting rooms: %s\n", err.Error())
		return nil, types.ErrPersistence
	}

	var rooms []models.Room
	err = q.
		Select("rooms.*").
		Scopes(roomOrder(filter.Sort)).
		Preload("RoomType").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rooms).
		Error
	if err != nil {
		log.Printf("Error searching rooms: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	items, err := toListings(db, rooms, filter.UserID)
	if err != nil {
		return nil, err
	}
	pages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return &PagedRooms{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: pages,
		CheckIn:    filter.CheckIn.Format(config.DATE_FORMAT),
		CheckOut:   filter.CheckOut.Format(config.DATE_FORMAT),
	}, nil
}

func roomOrder(sort string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch sort {
		case SORT_PRICE_ASC:
			return db.Order("room_types.price_per_night ASC").Order("rooms.room_number ASC")
		case SORT_PRICE_DESC:
			return db.Order("room_types.price_per_night DESC").Order("rooms.room_number ASC")
		case SORT_RATING:
			return db.
				Order("(SELECT COALESCE(AVG(room_feedbacks.rating), 0) FROM room_feedbacks WHERE room_feedbacks.room_id = rooms.id AND room_feedbacks.is_approved = TRUE) DESC").
				Order("rooms.room_number ASC")
		default:
			return db.
				Order("(SELECT COUNT(*) FROM bookings WHERE bookings.room_id = rooms.id) DESC").
				Order("rooms.room_number ASC")
		}
	}
}

func toListings(tx *gorm.DB, rooms []models.Room, userID uint) ([]RoomListing, error) {
	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	ratings, err := RatingSummaries(tx, ids)
	if err != nil {
		log.Printf("Error loading ratings: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	favorites := map[uint]bool{}
	if userID > 0 {
		favIDs, err := FavoriteRoomIDs(userID)
		if err != nil {
			return nil, err
		}
		for _, id := range favIDs {
			favorites[id] = true
		}
	}
	items := make([]RoomListing, 0, len(rooms))
	for _, r := range rooms {
		summary := ratings[r.ID]
		items = append(items, RoomListing{
			Room:          r,
			AverageRating: summary.Average,
			ReviewCount:   summary.Count,
			IsFavorite:    favorites[r.ID],
		})
	}
	return items, nil
}

// GetRoom loads a room with its type and images. Inactive rooms are only
// returned when includeInactive is set.
func GetRoom(id uint, includeInactive bool) (*models.Room, error) {
	db := db.GetDb()
	q := db.
		Model(&models.Room{}).
		Scopes(scopes.WithID(id)).
		Preload("RoomType").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
	if !includeInactive {
		q = q.Scopes(scopes.ActiveRooms)
	}
	var room models.Room
	err := q.First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrRoomNotFound
	}
	if err != nil {
		log.Printf("Error retrieving room %d: %s\n", id, err.Error())
		return nil, types.ErrPersistence
	}
	return &room, nil
}

// GetRoomListing is GetRoom plus rating and favorite flags.
func GetRoomListing(id, userID uint) (*RoomListing, error) {
	room, err := GetRoom(id, false)
	if err != nil {
		return nil, err
	}
	items, err := toListings(db.GetDb(), []models.Room{*room}, userID)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// CheckRoomAvailability answers a public availability query for one room.
func CheckRoomAvailability(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	if !checkIn.Before(checkOut) {
		return false, types.ErrInvalidDateRange
	}
	if _, err := GetRoom(roomID, false); err != nil {
		return false, err
	}
	available, err := IsRoomAvailable(db.GetDb(), roomID, checkIn, checkOut, nil)
	if err != nil {
		log.Printf("Error checking availability for room %d: %s\n", roomID, err.Error())
		return false, types.ErrPersistence
	}
	return available, nil
}

// FeaturedRooms returns up to n active rooms, best rated first.
func FeaturedRooms(n int) ([]RoomListing, error) {
	db := db.GetDb()
	var rooms []models.Room
	err := db.
		Model(&models.Room{}).
		Scopes(scopes.ActiveRooms, roomOrder(SORT_RATING)).
		Preload("RoomType").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Limit(n).
		Find(&rooms).
		Error
	if err != nil {
		log.Printf("Error retrieving featured rooms: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	return toListings(db, rooms, 0)
}

func ListRoomTypes() ([]models.RoomType, error) {
	db := db.GetDb()
	var roomTypes []models.RoomType
	if err := db.Model(&models.RoomType{}).Order("name ASC").Find(&roomTypes).Error; err != nil {
		log.Printf("Error retrieving room types: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	return roomTypes, nil
}

func GetRoomTypeBySlug(slug string) (*models.RoomType, error) {
	db := db.GetDb()
	var roomType models.RoomType
	err := db.
		Model(&models.RoomType{}).
		Where("slug = ?", slug).
		Preload("Rooms", scopes.ActiveRooms).
		Preload("Rooms.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&roomType).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrRoomTypeNotFound
	}
	if err != nil {
		log.Printf("Error retrieving room type %s: %s\n", slug, err.Error())
		return nil, types.ErrPersistence
	}
	return &roomType, nil
}
