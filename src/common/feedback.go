package common

import (
	"bookify/src/db"
	"bookify/src/models"
	"bookify/src/types"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

const maxCommentLength = 1000

type RatingSummary struct {
	RoomID  uint    `json:"room_id"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// AddFeedback stores a review. Reviews are approved on submission and can
// be hidden later by an admin.
func AddFeedback(userID, roomID uint, comment string, rating int) (*models.RoomFeedback, error) {
	if rating < 1 || rating > 5 {
		return nil, types.ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return nil, types.ErrCommentTooLong
	}
	if _, err := GetRoom(roomID, false); err != nil {
		return nil, err
	}
	feedback := models.RoomFeedback{
		UserID:     userID,
		RoomID:     roomID,
		Comment:    comment,
		Rating:     rating,
		IsApproved: true,
	}
	db := db.GetDb()
	if err := db.Create(&feedback).Error; err != nil {
		log.Printf("Error saving feedback for room %d: %s\n", roomID, err.Error())
		return nil, types.ErrPersistence
	}
	return &feedback, nil
}

func ListRoomFeedback(roomID uint, approvedOnly bool) ([]models.RoomFeedback, error) {
	db := db.GetDb()
	q := db.
		Model(&models.RoomFeedback{}).
		Where("room_id = ?", roomID).
		Preload("User")
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	var feedback []models.RoomFeedback
	if err := q.Order("created_at DESC").Order("id DESC").Find(&feedback).Error; err != nil {
		log.Printf("Error retrieving feedback for room %d: %s\n", roomID, err.Error())
		return nil, types.ErrPersistence
	}
	return feedback, nil
}

// LatestFeedback returns the n newest approved reviews across all rooms.
func LatestFeedback(n int) ([]models.RoomFeedback, error) {
	db := db.GetDb()
	var feedback []models.RoomFeedback
	err := db.
		Model(&models.RoomFeedback{}).
		Where("is_approved = ?", true).
		Preload("User").
		Preload("Room").
		Order("created_at DESC").
		Order("id DESC").
		Limit(n).
		Find(&feedback).
		Error
	if err != nil {
		log.Printf("Error retrieving latest feedback: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	return feedback, nil
}

// AverageRating is the mean approved rating for a room, or 0 without reviews.
func AverageRating(roomID uint) (float64, error) {
	summaries, err := RatingSummaries(db.GetDb(), []uint{roomID})
	if err != nil {
		return 0, err
	}
	return summaries[roomID].Average, nil
}

// RatingSummaries averages approved ratings per room. Rooms without reviews
// are absent from the map.
func RatingSummaries(tx *gorm.DB, roomIDs []uint) (map[uint]RatingSummary, error) {
	out := map[uint]RatingSummary{}
	if len(roomIDs) == 0 {
		return out, nil
	}
	var rows []RatingSummary
	err := tx.
		Model(&models.RoomFeedback{}).
		Select("room_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("room_id IN ? AND is_approved = ?", roomIDs, true).
		Group("room_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.RoomID] = r
	}
	return out, nil
}

func SetFeedbackApproval(id uint, approved bool) error {
	db := db.GetDb()
	res := db.
		Model(&models.RoomFeedback{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if res.Error != nil {
		log.Printf("Error updating feedback %d: %s\n", id, res.Error.Error())
		return types.ErrPersistence
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.RoomFeedback{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return types.ErrPersistence
		}
		if count == 0 {
			return types.ErrFeedbackNotFound
		}
	}
	return nil
}

func GetFeedback(id uint) (*models.RoomFeedback, error) {
	db := db.GetDb()
	var feedback models.RoomFeedback
	err := db.Model(&models.RoomFeedback{}).Where("id = ?", id).First(&feedback).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrFeedbackNotFound
	}
	if err != nil {
		return nil, types.ErrPersistence
	}
	return &feedback, nil
}
