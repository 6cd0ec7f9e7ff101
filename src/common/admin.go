package common

import (
	"bookify/src/db"
	"bookify/src/models"
	"bookify/src/types"
	"errors"
	"log"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func CreateRoomType(body *types.RoomTypeRequestBody) (*models.RoomType, error) {
	roomType := models.RoomType{
		Name:          strings.TrimSpace(body.Name),
		Slug:          slug.Make(body.Name),
		Description:   body.Description,
		Capacity:      body.Capacity,
		PricePerNight: body.PricePerNight,
		Amenities:     types.StringList(body.Amenities),
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureRoomTypeNameFree(tx, roomType.Name, 0); err != nil {
			return err
		}
		return tx.Create(&roomType).Error
	})
	if err != nil {
		return nil, mapAdminError(err, types.ErrRoomTypeNameTaken)
	}
	return &roomType, nil
}

func UpdateRoomType(id uint, body *types.RoomTypeRequestBody) (*models.RoomType, error) {
	db := db.GetDb()
	var roomType models.RoomType
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RoomType{}).Where("id = ?", id).First(&roomType).Error; err != nil {
			return err
		}
		name := strings.TrimSpace(body.Name)
		if err := ensureRoomTypeNameFree(tx, name, id); err != nil {
			return err
		}
		roomType.Name = name
		roomType.Slug = slug.Make(name)
		roomType.Description = body.Description
		roomType.Capacity = body.Capacity
		roomType.PricePerNight = body.PricePerNight
		roomType.Amenities = types.StringList(body.Amenities)
		return tx.Save(&roomType).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, mapAdminError(err, types.ErrRoomTypeNameTaken)
	}
	return &roomType, nil
}

// DeleteRoomType refuses while any room still uses the type.
func DeleteRoomType(id uint) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var rooms int64
		if err := tx.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&rooms).Error; err != nil {
			return err
		}
		if rooms > 0 {
			return types.ErrRoomTypeInUse
		}
		res := tx.Where("id = ?", id).Delete(&models.RoomType{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrRoomTypeNotFound
		}
		return nil
	})
	if err != nil {
		return mapAdminError(err, types.ErrRoomTypeInUse)
	}
	return nil
}

func ensureRoomTypeNameFree(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := tx.
		Model(&models.RoomType{}).
		Where("(LOWER(name) = LOWER(?) OR slug = ?) AND id <> ?", name, slug.Make(name), exceptID).
		Count(&count).
		Error; err != nil {
		return err
	}
	if count > 0 {
		return types.ErrRoomTypeNameTaken
	}
	return nil
}

// ListAllRooms includes inactive rooms.
func ListAllRooms() ([]models.Room, error) {
	db := db.GetDb()
	var rooms []models.Room
	if err := db.
		Model(&models.Room{}).
		Preload("RoomType").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("room_number ASC").
		Find(&rooms).
		Error; err != nil {
		log.Printf("Error retrieving rooms: %s\n", err.Error())
		return nil, types.ErrPersistence
	}
	return rooms, nil
}

func CreateRoom(body *types.RoomRequestBody) (*models.Room, error) {
	room := models.Room{
		RoomNumber: strings.TrimSpace(body.RoomNumber),
		RoomTypeID: body.RoomTypeID,
		Floor:      body.Floor,
		IsActive:   body.IsActive == nil || *body.IsActive,
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureRoomTypeExists(tx, body.RoomTypeID); err != nil {
			return err
		}
		if err := ensureRoomNumberFree(tx, room.RoomNumber, 0); err != nil {
			return err
		}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		if !room.IsActive {
			// zero value would otherwise be replaced by the column default
			return tx.Model(&room).Update("is_active", false).Error
		}
		return nil
	})
	if err != nil {
		return nil, mapAdminError(err, types.ErrRoomNumberTaken)
	}
	return &room, nil
}

func UpdateRoom(id uint, body *types.RoomRequestBody) (*models.Room, error) {
	db := db.GetDb()
	var room models.Room
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Room{}).Where("id = ?", id).First(&room).Error; err != nil {
			return err
		}
		if err := ensureRoomTypeExists(tx, body.RoomTypeID); err != nil {
			return err
		}
		number := strings.TrimSpace(body.RoomNumber)
		if err := ensureRoomNumberFree(tx, number, id); err != nil {
			return err
		}
		updates := map[string]any{
			"room_number":  number,
			"room_type_id": body.RoomTypeID,
			"floor":        body.Floor,
		}
		if body.IsActive != nil {
			updates["is_active"] = *body.IsActive
		}
		if err := tx.Model(&room).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).Where("id = ?", id).Preload("RoomType").First(&room).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrRoomNotFound
	}
	if err != nil {
		return nil, mapAdminError(err, types.ErrRoomNumberTaken)
	}
	return &room, nil
}

// SetRoomActive toggles whether the room can be searched and booked.
func SetRoomActive(id uint, active bool) error {
	db := db.GetDb()
	res := db.Model(&models.Room{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		log.Printf("Error updating room %d: %s\n", id, res.Error.Error())
		return types.ErrPersistence
	}
	if res.RowsAffected == 0 {
		return types.ErrRoomNotFound
	}
	return nil
}

// DeleteRoom removes a room that has never been booked. Booked rooms can
// only be deactivated.
func DeleteRoom(id uint) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var bookings int64
		if err := tx.Model(&models.Booking{}).Where("room_id = ?", id).Count(&bookings).Error; err != nil {
			return err
		}
		if bookings > 0 {
			return types.ErrRoomHasBookings
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.FavoriteRoom{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomFeedback{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Room{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrRoomNotFound
		}
		return nil
	})
	if err != nil {
		return mapAdminError(err, types.ErrRoomHasBookings)
	}
	return nil
}

func AddRoomImage(roomID uint, body *types.RoomImageRequestBody) (*models.RoomImage, error) {
	if _, err := GetRoom(roomID, true); err != nil {
		return nil, err
	}
	image := models.RoomImage{RoomID: roomID, URL: body.URL, SortOrder: body.SortOrder}
	if err := db.GetDb().Create(&image).Error; err != nil {
		log.Printf("Error adding image to room %d: %s\n", roomID, err.Error())
		return nil, types.ErrPersistence
	}
	return &image, nil
}

func RemoveRoomImage(roomID, imageID uint) error {
	res := db.GetDb().Where("id = ? AND room_id = ?", imageID, roomID).Delete(&models.RoomImage{})
	if res.Error != nil {
		log.Printf("Error removing image %d from room %d: %s\n", imageID, roomID, res.Error.Error())
		return types.ErrPersistence
	}
	if res.RowsAffected == 0 {
		return types.NewAppError(types.KIND_NOT_FOUND, "image not found")
	}
	return nil
}

func ensureRoomTypeExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.RoomType{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return types.ErrRoomTypeNotFound
	}
	return nil
}

func ensureRoomNumberFree(tx *gorm.DB, number string, exceptID uint) error {
	var count int64
	if err := tx.
		Model(&models.Room{}).
		Where("LOWER(room_number) = LOWER(?) AND id <> ?", number, exceptID).
		Count(&count).
		Error; err != nil {
		return err
	}
	if count > 0 {
		return types.ErrRoomNumberTaken
	}
	return nil
}

// mapAdminError keeps app errors, turns constraint violations into conflict
// and logs everything else as a persistence failure.
func mapAdminError(err error, conflict *types.AppError) error {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return conflict
	}
	log.Printf("Error saving catalog change: %s\n", err.Error())
	return types.ErrPersistence
}
