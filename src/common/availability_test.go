package common

import (
	"bookify/src/types"
)

func (s *CommonSuite) TestIsRoomAvailableOverlap() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))
	s.seedBooking(room, s.User.ID, s.day(5), s.day(8), types.BOOKING_CONFIRMED)

	cases := []struct {
		name      string
		in, out   int
		available bool
	}{
		{"inside", 6, 7, false},
		{"covering", 4, 9, false},
		{"overlapping start", 3, 6, false},
		{"overlapping end", 7, 10, false},
		{"ends on check-in", 3, 5, true},
		{"starts on check-out", 8, 10, true},
		{"disjoint", 10, 12, true},
	}
	for _, c := range cases {
		ok, err := IsRoomAvailable(s.DB, room.ID, s.day(c.in), s.day(c.out), nil)
		s.NoError(err, c.name)
		s.Equal(c.available, ok, c.name)
	}
}

func (s *CommonSuite) TestIsRoomAvailableIgnoresNonBlocking() {
	room := s.seedRoom("102", s.seedRoomType("Standard", 80, 2))
	s.seedBooking(room, s.User.ID, s.day(1), s.day(4), types.BOOKING_CANCELLED)
	s.seedBooking(room, s.User.ID, s.day(1), s.day(4), types.BOOKING_COMPLETED)

	ok, err := IsRoomAvailable(s.DB, room.ID, s.day(2), s.day(3), nil)
	s.NoError(err)
	s.True(ok)

	s.seedBooking(room, s.User.ID, s.day(1), s.day(4), types.BOOKING_PENDING_PAYMENT)
	ok, err = IsRoomAvailable(s.DB, room.ID, s.day(2), s.day(3), nil)
	s.NoError(err)
	s.False(ok)
}

func (s *CommonSuite) TestIsRoomAvailableExcludesOwnBooking() {
	room := s.seedRoom("103", s.seedRoomType("Suite", 300, 4))
	own := s.seedBooking(room, s.User.ID, s.day(2), s.day(5), types.BOOKING_CONFIRMED)

	ok, err := IsRoomAvailable(s.DB, room.ID, own.CheckIn, own.CheckOut, &own.ID)
	s.NoError(err)
	s.True(ok)

	ok, err = IsRoomAvailable(s.DB, room.ID, own.CheckIn, own.CheckOut, nil)
	s.NoError(err)
	s.False(ok)
}

func (s *CommonSuite) TestBookedRoomIDs() {
	rt := s.seedRoomType("Twin", 90, 2)
	a := s.seedRoom("201", rt)
	b := s.seedRoom("202", rt)
	c := s.seedRoom("203", rt)
	s.seedBooking(a, s.User.ID, s.day(1), s.day(3), types.BOOKING_CONFIRMED)
	s.seedBooking(a, s.User.ID, s.day(3), s.day(4), types.BOOKING_PENDING_PAYMENT)
	s.seedBooking(b, s.User.ID, s.day(3), s.day(5), types.BOOKING_CONFIRMED)
	s.seedBooking(c, s.User.ID, s.day(1), s.day(5), types.BOOKING_CANCELLED)

	ids, err := BookedRoomIDs(s.DB, s.day(1), s.day(3))
	s.NoError(err)
	s.ElementsMatch([]uint{a.ID}, ids)

	ids, err = BookedRoomIDs(s.DB, s.day(2), s.day(4))
	s.NoError(err)
	s.ElementsMatch([]uint{a.ID, b.ID}, ids)
}
