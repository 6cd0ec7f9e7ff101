package common

import (
	"bookify/src/db"
	"bookify/src/models"
	"bookify/src/types"
	"errors"
	"log"

	"gorm.io/gorm"
)

// ToggleFavorite bookmarks the room, or removes an existing bookmark.
// It returns whether the room is a favorite afterwards.
func ToggleFavorite(userID, roomID uint) (bool, error) {
	if _, err := GetRoom(roomID, false); err != nil {
		return false, err
	}
	db := db.GetDb()
	added := false
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("user_id = ? AND room_id = ?", userID, roomID).
			Delete(&models.FavoriteRoom{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		added = true
		return tx.Create(&models.FavoriteRoom{UserID: userID, RoomID: roomID}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		log.Printf("Error toggling favorite room %d for user %d: %s\n", roomID, userID, err.Error())
		return false, types.ErrPersistence
	}
	return added, nil
}

func IsFavorite(userID, roomID uint) (bool, error) {
	db := db.GetDb()
	var count int64
	if err := db.
		Model(&models.FavoriteRoom{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).
		Error; err != nil {
		return false, types.ErrPersistence
	}
	return count > 0, nil
}

func FavoriteRoomIDs(userID uint) ([]uint, error) {
	db := db.GetDb()
	var ids []uint
	if err := db.
		Model(&models.FavoriteRoom{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("room_id", &ids).
		Error; err != nil {
		log.Printf("Error retrieving favorites for user %d: %s\n", userID, err.Error())
		return nil, types.ErrPersistence
	}
	return ids, nil
}

func ListFavoriteRooms(userID uint) ([]models.FavoriteRoom, error) {
	db := db.GetDb()
	var favorites []models.FavoriteRoom
	err := db.
		Model(&models.FavoriteRoom{}).
		Where("user_id = ?", userID).
		Preload("Room").
		Preload("Room.RoomType").
		Preload("Room.Images").
		Order("created_at DESC").
		Find(&favorites).
		Error
	if err != nil {
		log.Printf("Error retrieving favorites for user %d: %s\n", userID, err.Error())
		return nil, types.ErrPersistence
	}
	return favorites, nil
}
