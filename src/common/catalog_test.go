package common

import (
	"bookify/src/models"
	"bookify/src/types"
)

func (s *CommonSuite) TestSearchRoomsExcludesBookedAndInactive() {
	rt := s.seedRoomType("Deluxe", 100, 2)
	free := s.seedRoom("101", rt)
	booked := s.seedRoom("102", rt)
	touching := s.seedRoom("103", rt)
	inactive := s.seedRoom("104", rt)
	s.Require().NoError(SetRoomActive(inactive.ID, false))
	s.seedBooking(booked, s.Other.ID, s.day(1), s.day(3), types.BOOKING_CONFIRMED)
	s.seedBooking(touching, s.Other.ID, s.day(3), s.day(5), types.BOOKING_PENDING_PAYMENT)

	page, err := SearchRooms(RoomFilter{CheckIn: s.day(1), CheckOut: s.day(3), Sort: SORT_PRICE_ASC}, s.Today)
	s.Require().NoError(err)
	ids := []uint{}
	for _, item := range page.Items {
		ids = append(ids, item.ID)
	}
	s.ElementsMatch([]uint{free.ID, touching.ID}, ids)
	s.Equal(int64(2), page.Total)
	s.Equal(1, page.TotalPages)
}

func (s *CommonSuite) TestSearchRoomsFiltersAndSorts() {
	cheap := s.seedRoomType("Standard", 80, 2)
	mid := s.seedRoomType("Deluxe", 150, 3)
	lux := s.seedRoomType("Suite", 400, 5)
	a := s.seedRoom("101", cheap)
	b := s.seedRoom("201", mid)
	c := s.seedRoom("301", lux)

	page, err := SearchRooms(RoomFilter{Sort: SORT_PRICE_DESC}, s.Today)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 3)
	s.Equal([]uint{c.ID, b.ID, a.ID}, []uint{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID})
	s.Equal(s.day(1).Format("2006-01-02"), page.CheckIn)

	page, err = SearchRooms(RoomFilter{PriceMin: 100, PriceMax: 200}, s.Today)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(b.ID, page.Items[0].ID)

	page, err = SearchRooms(RoomFilter{Guests: 4}, s.Today)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(c.ID, page.Items[0].ID)

	page, err = SearchRooms(RoomFilter{Search: "suite"}, s.Today)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(c.ID, page.Items[0].ID)

	page, err = SearchRooms(RoomFilter{TypeID: cheap.ID}, s.Today)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(a.ID, page.Items[0].ID)

	page, err = SearchRooms(RoomFilter{PageSize: 2, Page: 2, Sort: SORT_PRICE_ASC}, s.Today)
	s.Require().NoError(err)
	s.Equal(int64(3), page.Total)
	s.Equal(2, page.TotalPages)
	s.Require().Len(page.Items, 1)
	s.Equal(c.ID, page.Items[0].ID)

	_, err = SearchRooms(RoomFilter{CheckIn: s.day(3), CheckOut: s.day(1)}, s.Today)
	s.ErrorIs(err, types.ErrInvalidDateRange)
}

func (s *CommonSuite) TestSearchRoomsFavoritesAndRating() {
	rt := s.seedRoomType("Deluxe", 100, 2)
	a := s.seedRoom("101", rt)
	b := s.seedRoom("102", rt)

	_, err := AddFeedback(s.User.ID, b.ID, "Great view", 5)
	s.Require().NoError(err)
	_, err = AddFeedback(s.Other.ID, b.ID, "Fine", 4)
	s.Require().NoError(err)
	_, err = AddFeedback(s.Other.ID, a.ID, "Noisy", 2)
	s.Require().NoError(err)

	page, err := SearchRooms(RoomFilter{Sort: SORT_RATING}, s.Today)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 2)
	s.Equal(b.ID, page.Items[0].ID)
	s.InDelta(4.5, page.Items[0].AverageRating, 0.001)
	s.Equal(int64(2), page.Items[0].ReviewCount)

	added, err := ToggleFavorite(s.User.ID, a.ID)
	s.Require().NoError(err)
	s.True(added)

	page, err = SearchRooms(RoomFilter{FavoritesOnly: true, UserID: s.User.ID}, s.Today)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(a.ID, page.Items[0].ID)
	s.True(page.Items[0].IsFavorite)
}

func (s *CommonSuite) TestFeedbackAverage() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))

	avg, err := AverageRating(room.ID)
	s.NoError(err)
	s.Zero(avg)

	_, err = AddFeedback(s.User.ID, room.ID, "ok", 0)
	s.ErrorIs(err, types.ErrInvalidRating)
	_, err = AddFeedback(s.User.ID, room.ID, "ok", 6)
	s.ErrorIs(err, types.ErrInvalidRating)
	_, err = AddFeedback(s.User.ID, 9999, "ok", 3)
	s.ErrorIs(err, types.ErrRoomNotFound)

	f1, err := AddFeedback(s.User.ID, room.ID, "Lovely", 5)
	s.Require().NoError(err)
	s.True(f1.IsApproved)
	f2, err := AddFeedback(s.Other.ID, room.ID, "Bad", 1)
	s.Require().NoError(err)
	_, err = AddFeedback(s.Other.ID, room.ID, "Good", 3)
	s.Require().NoError(err)

	avg, err = AverageRating(room.ID)
	s.NoError(err)
	s.InDelta(3.0, avg, 0.001)

	s.Require().NoError(SetFeedbackApproval(f2.ID, false))
	avg, err = AverageRating(room.ID)
	s.NoError(err)
	s.InDelta(4.0, avg, 0.001)

	visible, err := ListRoomFeedback(room.ID, true)
	s.NoError(err)
	s.Len(visible, 2)
	all, err := ListRoomFeedback(room.ID, false)
	s.NoError(err)
	s.Len(all, 3)

	s.ErrorIs(SetFeedbackApproval(99999, true), types.ErrFeedbackNotFound)

	moderated, err := GetFeedback(f2.ID)
	s.Require().NoError(err)
	s.False(moderated.IsApproved)
	s.Equal("Bad", moderated.Comment)
	_, err = GetFeedback(99999)
	s.ErrorIs(err, types.ErrFeedbackNotFound)

	latest, err := LatestFeedback(1)
	s.NoError(err)
	s.Require().Len(latest, 1)
	s.NotNil(latest[0].User)
}

func (s *CommonSuite) TestToggleFavorite() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))

	added, err := ToggleFavorite(s.User.ID, room.ID)
	s.NoError(err)
	s.True(added)
	fav, err := IsFavorite(s.User.ID, room.ID)
	s.NoError(err)
	s.True(fav)

	ids, err := FavoriteRoomIDs(s.User.ID)
	s.NoError(err)
	s.Equal([]uint{room.ID}, ids)

	added, err = ToggleFavorite(s.User.ID, room.ID)
	s.NoError(err)
	s.False(added)
	var count int64
	s.DB.Model(&models.FavoriteRoom{}).Count(&count)
	s.Zero(count)

	_, err = ToggleFavorite(s.User.ID, 9999)
	s.ErrorIs(err, types.ErrRoomNotFound)
}

func (s *CommonSuite) TestCheckRoomAvailability() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))
	s.seedBooking(room, s.Other.ID, s.day(1), s.day(3), types.BOOKING_CONFIRMED)

	ok, err := CheckRoomAvailability(room.ID, s.day(3), s.day(4))
	s.NoError(err)
	s.True(ok)
	ok, err = CheckRoomAvailability(room.ID, s.day(2), s.day(4))
	s.NoError(err)
	s.False(ok)
	_, err = CheckRoomAvailability(room.ID, s.day(4), s.day(4))
	s.ErrorIs(err, types.ErrInvalidDateRange)
	_, err = CheckRoomAvailability(9999, s.day(1), s.day(2))
	s.ErrorIs(err, types.ErrRoomNotFound)
}
