package common

import (
	"bookify/src/models"
	"bookify/src/types"
)

func roomTypeBody(name string, price float64) *types.RoomTypeRequestBody {
	return &types.RoomTypeRequestBody{
		Name:          name,
		Description:   name + " with a view",
		Capacity:      2,
		PricePerNight: price,
		Amenities:     []string{"wifi", "minibar"},
	}
}

func (s *CommonSuite) TestRoomTypeCRUD() {
	rt, err := CreateRoomType(roomTypeBody("Ocean Suite", 250))
	s.Require().NoError(err)
	s.Equal("ocean-suite", rt.Slug)

	_, err = CreateRoomType(roomTypeBody("ocean suite", 100))
	s.ErrorIs(err, types.ErrRoomTypeNameTaken)

	found, err := GetRoomTypeBySlug("ocean-suite")
	s.Require().NoError(err)
	s.Equal(rt.ID, found.ID)

	updated, err := UpdateRoomType(rt.ID, roomTypeBody("Garden Suite", 200))
	s.Require().NoError(err)
	s.Equal("garden-suite", updated.Slug)
	s.Equal(200.0, updated.PricePerNight)

	_, err = UpdateRoomType(9999, roomTypeBody("Nope", 1))
	s.ErrorIs(err, types.ErrRoomTypeNotFound)

	_, err = GetRoomTypeBySlug("ocean-suite")
	s.ErrorIs(err, types.ErrRoomTypeNotFound)

	_, err = CreateRoom(&types.RoomRequestBody{RoomNumber: "501", RoomTypeID: rt.ID, Floor: 5})
	s.Require().NoError(err)
	s.ErrorIs(DeleteRoomType(rt.ID), types.ErrRoomTypeInUse)

	empty, err := CreateRoomType(roomTypeBody("Closet", 10))
	s.Require().NoError(err)
	s.NoError(DeleteRoomType(empty.ID))
	s.ErrorIs(DeleteRoomType(empty.ID), types.ErrRoomTypeNotFound)
}

func (s *CommonSuite) TestRoomCRUD() {
	rt := s.seedRoomType("Deluxe", 100, 2)
	inactive := false

	room, err := CreateRoom(&types.RoomRequestBody{RoomNumber: "12A", RoomTypeID: rt.ID, Floor: 1, IsActive: &inactive})
	s.Require().NoError(err)
	s.False(room.IsActive)
	_, err = GetRoom(room.ID, false)
	s.ErrorIs(err, types.ErrRoomNotFound)
	_, err = GetRoom(room.ID, true)
	s.NoError(err)

	_, err = CreateRoom(&types.RoomRequestBody{RoomNumber: "12a", RoomTypeID: rt.ID})
	s.ErrorIs(err, types.ErrRoomNumberTaken)
	_, err = CreateRoom(&types.RoomRequestBody{RoomNumber: "13", RoomTypeID: 9999})
	s.ErrorIs(err, types.ErrRoomTypeNotFound)

	active := true
	updated, err := UpdateRoom(room.ID, &types.RoomRequestBody{RoomNumber: "12B", RoomTypeID: rt.ID, Floor: 2, IsActive: &active})
	s.Require().NoError(err)
	s.Equal("12B", updated.RoomNumber)
	s.True(updated.IsActive)
	s.NotNil(updated.RoomType)

	_, err = UpdateRoom(9999, &types.RoomRequestBody{RoomNumber: "X", RoomTypeID: rt.ID})
	s.ErrorIs(err, types.ErrRoomNotFound)

	s.ErrorIs(SetRoomActive(9999, true), types.ErrRoomNotFound)

	rooms, err := ListAllRooms()
	s.NoError(err)
	s.Len(rooms, 1)
}

func (s *CommonSuite) TestDeleteRoom() {
	rt := s.seedRoomType("Deluxe", 100, 2)
	booked := s.seedRoom("101", rt)
	spare := s.seedRoom("102", rt)
	s.seedBooking(booked, s.User.ID, s.day(1), s.day(2), types.BOOKING_CANCELLED)

	s.ErrorIs(DeleteRoom(booked.ID), types.ErrRoomHasBookings)

	_, err := AddRoomImage(spare.ID, &types.RoomImageRequestBody{URL: "https://img.example.com/102.jpg"})
	s.Require().NoError(err)
	_, err = ToggleFavorite(s.User.ID, spare.ID)
	s.Require().NoError(err)

	s.NoError(DeleteRoom(spare.ID))
	s.ErrorIs(DeleteRoom(spare.ID), types.ErrRoomNotFound)

	var images int64
	s.DB.Model(&models.RoomImage{}).Count(&images)
	s.Zero(images)
}

func (s *CommonSuite) TestRoomImages() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))

	second, err := AddRoomImage(room.ID, &types.RoomImageRequestBody{URL: "b.jpg", SortOrder: 2})
	s.Require().NoError(err)
	_, err = AddRoomImage(room.ID, &types.RoomImageRequestBody{URL: "a.jpg", SortOrder: 1})
	s.Require().NoError(err)

	loaded, err := GetRoom(room.ID, false)
	s.Require().NoError(err)
	s.Len(loaded.Images, 2)
	s.Equal("a.jpg", loaded.Thumbnail())

	s.NoError(RemoveRoomImage(room.ID, second.ID))
	err = RemoveRoomImage(room.ID, second.ID)
	s.Require().Error(err)
	s.Equal(404, types.AsAppError(err).HTTPStatus())

	_, err = AddRoomImage(9999, &types.RoomImageRequestBody{URL: "c.jpg"})
	s.ErrorIs(err, types.ErrRoomNotFound)
}
