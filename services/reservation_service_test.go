package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelchain-backend/models"
)

func TestCreateReservationSnapshotsRatesAndComputesTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	room1 := seedRoom(t, db, hotel.ID, roomType.ID, "101")
	room2 := seedRoom(t, db, hotel.ID, roomType.ID, "102")
	guest := seedGuest(t, db, "P100")

	reservation, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID:      guest.ID,
		HotelID:      hotel.ID,
		RoomIDs:      []uint{room1.ID, room2.ID},
		CheckInDate:  date(2026, 3, 10),
		CheckOutDate: date(2026, 3, 13),
		Adults:       2,
	})
	require.NoError(t, err)
	require.Equal(t, models.ReservationPending, reservation.Status)
	require.True(t, strings.HasPrefix(reservation.Code, "RES-"))
	// 2 rooms x 3 nights x 100
	require.Equal(t, 600.0, reservation.TotalAmount)
	require.Equal(t, 0.0, reservation.PaidAmount)
	require.Len(t, reservation.Rooms, 2)
	for _, rr := range reservation.Rooms {
		require.Equal(t, 100.0, rr.DailyRate)
	}

	// Raising the base rate later must not change the snapshotted total.
	require.NoError(t, db.Model(&models.RoomType{}).Where("id = ?", roomType.ID).Update("base_rate", 500).Error)
	reloaded, err := svc.Get(superAdmin(), reservation.ID)
	require.NoError(t, err)
	require.Equal(t, 600.0, reloaded.TotalAmount)

	// A pending reservation holds no room inventory yet.
	require.Equal(t, models.RoomAvailable, roomStatus(t, db, room1.ID))
}

func TestCreateReservationRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	room := seedRoom(t, db, hotel.ID, roomType.ID, "101")
	guest := seedGuest(t, db, "P100")

	_, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: nil,
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.True(t, IsValidation(err))

	// check-in not before check-out
	_, err = svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 12), CheckOutDate: date(2026, 3, 12),
	})
	require.True(t, IsValidation(err))

	// unknown guest
	_, err = svc.Create(superAdmin(), CreateReservationInput{
		GuestID: 999, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.True(t, IsValidation(err))

	// room from another hotel
	other := seedHotel(t, db, "CNX")
	_, err = svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: other.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.ErrorIs(t, err, ErrRoomsUnavailable)
}

func TestCreateReservationOverlapConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	room := seedRoom(t, db, hotel.ID, roomType.ID, "101")
	guest := seedGuest(t, db, "P100")

	first, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 15),
	})
	require.NoError(t, err)

	// overlapping interval
	_, err = svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 12), CheckOutDate: date(2026, 3, 18),
	})
	require.ErrorIs(t, err, ErrRoomConflict)

	// bounds are inclusive: back-to-back on the boundary day still conflicts
	_, err = svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 15), CheckOutDate: date(2026, 3, 17),
	})
	require.ErrorIs(t, err, ErrRoomConflict)

	// clearly disjoint dates book fine
	_, err = svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 20), CheckOutDate: date(2026, 3, 22),
	})
	require.NoError(t, err)

	// cancelling releases the dates for rebooking
	_, err = svc.Transition(superAdmin(), first.ID, models.ReservationCancelled)
	require.NoError(t, err)
	_, err = svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 15),
	})
	require.NoError(t, err)
}

func TestLifecycleHappyPath(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	room := seedRoom(t, db, hotel.ID, roomType.ID, "101")
	guest := seedGuest(t, db, "P100")

	reservation, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.NoError(t, err)

	reservation, err = svc.Transition(superAdmin(), reservation.ID, models.ReservationConfirmed)
	require.NoError(t, err)
	require.Equal(t, models.ReservationConfirmed, reservation.Status)
	require.Equal(t, models.RoomReserved, roomStatus(t, db, room.ID))

	reservation, err = svc.Transition(superAdmin(), reservation.ID, models.ReservationCheckedIn)
	require.NoError(t, err)
	require.Equal(t, models.RoomOccupied, roomStatus(t, db, room.ID))
	require.NotNil(t, reservation.ActualCheckIn)

	reservation, err = svc.Transition(superAdmin(), reservation.ID, models.ReservationCheckedOut)
	require.NoError(t, err)
	require.Equal(t, models.RoomCleaning, roomStatus(t, db, room.ID))
	require.NotNil(t, reservation.ActualCheckOut)
}

func TestTransitionTable(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	guest := seedGuest(t, db, "P100")

	mk := func(number string, status string) uint {
		room := seedRoom(t, db, hotel.ID, roomType.ID, number)
		r, err := svc.Create(superAdmin(), CreateReservationInput{
			GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
			CheckInDate: date(2026, 4, 1), CheckOutDate: date(2026, 4, 3),
		})
		require.NoError(t, err)
		if status != models.ReservationPending {
			require.NoError(t, db.Model(&models.Reservation{}).Where("id = ?", r.ID).Update("status", status).Error)
		}
		return r.ID
	}

	cases := []struct {
		from, to string
		allowed  bool
	}{
		{models.ReservationPending, models.ReservationConfirmed, true},
		{models.ReservationPending, models.ReservationCancelled, true},
		{models.ReservationPending, models.ReservationCheckedIn, false},
		{models.ReservationPending, models.ReservationNoShow, false},
		{models.ReservationConfirmed, models.ReservationCheckedIn, true},
		{models.ReservationConfirmed, models.ReservationNoShow, true},
		{models.ReservationConfirmed, models.ReservationCancelled, true},
		{models.ReservationCheckedIn, models.ReservationCheckedOut, true},
		{models.ReservationCheckedIn, models.ReservationCancelled, false},
		{models.ReservationCheckedOut, models.ReservationConfirmed, false},
		{models.ReservationCancelled, models.ReservationConfirmed, false},
		{models.ReservationNoShow, models.ReservationConfirmed, false},
	}

	for i, tc := range cases {
		id := mk(string(rune('A'+i))+"01", tc.from)
		_, err := svc.Transition(superAdmin(), id, tc.to)
		if tc.allowed {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			var invalid *InvalidTransitionError
			require.ErrorAs(t, err, &invalid, "%s -> %s", tc.from, tc.to)

			// rejected transition leaves state unchanged
			var after models.Reservation
			require.NoError(t, db.First(&after, id).Error)
			require.Equal(t, tc.from, after.Status)
		}
	}

	_, err := svc.Transition(superAdmin(), mk("Z01", models.ReservationPending), "SOMETHING_ELSE")
	require.True(t, IsValidation(err))
}

func TestCancelReleasesOnlyHeldRooms(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	room := seedRoom(t, db, hotel.ID, roomType.ID, "101")
	guest := seedGuest(t, db, "P100")

	reservation, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.NoError(t, err)

	// cancel from PENDING: room was never held, stays AVAILABLE
	_, err = svc.Transition(superAdmin(), reservation.ID, models.ReservationCancelled)
	require.NoError(t, err)
	require.Equal(t, models.RoomAvailable, roomStatus(t, db, room.ID))

	// confirmed then no-show: the RESERVED room goes back to AVAILABLE
	second, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.NoError(t, err)
	_, err = svc.Transition(superAdmin(), second.ID, models.ReservationConfirmed)
	require.NoError(t, err)
	require.Equal(t, models.RoomReserved, roomStatus(t, db, room.ID))

	_, err = svc.Transition(superAdmin(), second.ID, models.ReservationNoShow)
	require.NoError(t, err)
	require.Equal(t, models.RoomAvailable, roomStatus(t, db, room.ID))
}

func TestUpdateReservationRecomputesTotalFromSnapshots(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	room := seedRoom(t, db, hotel.ID, roomType.ID, "101")
	guest := seedGuest(t, db, "P100")

	reservation, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.NoError(t, err)
	require.Equal(t, 200.0, reservation.TotalAmount)

	_, err = svc.AddCharge(superAdmin(), reservation.ID, AddChargeInput{
		Description: "Minibar", Category: "MINIBAR", Amount: 25, Quantity: 2,
	})
	require.NoError(t, err)

	// rate change after booking must not leak into the recompute
	require.NoError(t, db.Model(&models.RoomType{}).Where("id = ?", roomType.ID).Update("base_rate", 999).Error)

	newCheckOut := date(2026, 3, 15)
	updated, err := svc.Update(superAdmin(), reservation.ID, UpdateReservationInput{
		CheckOutDate: &newCheckOut,
	})
	require.NoError(t, err)
	// 5 nights x 100 + 2 x 25 in charges
	require.Equal(t, 550.0, updated.TotalAmount)

	// completed and cancelled reservations are immutable
	require.NoError(t, db.Model(&models.Reservation{}).Where("id = ?", reservation.ID).Update("status", models.ReservationCheckedOut).Error)
	_, err = svc.Update(superAdmin(), reservation.ID, UpdateReservationInput{CheckOutDate: &newCheckOut})
	require.True(t, IsValidation(err))
}

func TestAddChargeRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	room := seedRoom(t, db, hotel.ID, roomType.ID, "101")
	guest := seedGuest(t, db, "P100")

	reservation, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.NoError(t, err)

	charge, err := svc.AddCharge(superAdmin(), reservation.ID, AddChargeInput{
		Description: "Room service", Amount: 30,
	})
	require.NoError(t, err)
	require.Equal(t, 1, charge.Quantity)
	require.Equal(t, "OTHER", charge.Category)

	reloaded, err := svc.Get(superAdmin(), reservation.ID)
	require.NoError(t, err)
	require.Equal(t, 230.0, reloaded.TotalAmount)

	_, err = svc.AddCharge(superAdmin(), reservation.ID, AddChargeInput{Description: "", Amount: 10})
	require.True(t, IsValidation(err))

	require.NoError(t, db.Model(&models.Reservation{}).Where("id = ?", reservation.ID).Update("status", models.ReservationCancelled).Error)
	_, err = svc.AddCharge(superAdmin(), reservation.ID, AddChargeInput{Description: "Late", Amount: 10})
	require.True(t, IsValidation(err))
}

func TestDeleteReservationDetachesTransactions(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	txSvc := NewTransactionService(db)

	hotel := seedHotel(t, db, "BKK")
	roomType := seedRoomType(t, db, hotel.ID, 100)
	room := seedRoom(t, db, hotel.ID, roomType.ID, "101")
	guest := seedGuest(t, db, "P100")

	reservation, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotel.ID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.NoError(t, err)

	payment, err := txSvc.Create(superAdmin(), CreateTransactionInput{
		Amount: 100, Type: models.TransactionPayment, ReservationID: &reservation.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(superAdmin(), reservation.ID))

	_, err = svc.Get(superAdmin(), reservation.ID)
	require.ErrorIs(t, err, ErrNotFound)

	var joins int64
	require.NoError(t, db.Model(&models.ReservationRoom{}).Where("reservation_id = ?", reservation.ID).Count(&joins).Error)
	require.Zero(t, joins)

	// the ledger entry survives, detached
	var survivor models.Transaction
	require.NoError(t, db.First(&survivor, payment.ID).Error)
	require.Nil(t, survivor.ReservationID)
}

func TestReservationHotelScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	hotelA := seedHotel(t, db, "BKK")
	hotelB := seedHotel(t, db, "CNX")
	roomTypeA := seedRoomType(t, db, hotelA.ID, 100)
	roomA := seedRoom(t, db, hotelA.ID, roomTypeA.ID, "101")
	guest := seedGuest(t, db, "P100")

	reservation, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotelA.ID, RoomIDs: []uint{roomA.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.NoError(t, err)

	outsider := hotelStaff(hotelB.ID, models.RoleManager)
	_, err = svc.Get(outsider, reservation.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Transition(outsider, reservation.ID, models.ReservationConfirmed)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(outsider, CreateReservationInput{
		GuestID: guest.ID, HotelID: hotelA.ID, RoomIDs: []uint{roomA.ID},
		CheckInDate: date(2026, 5, 1), CheckOutDate: date(2026, 5, 2),
	})
	require.ErrorIs(t, err, ErrForbidden)

	listed, err := svc.List(outsider, ReservationFilter{})
	require.NoError(t, err)
	require.Empty(t, listed)

	insider := hotelStaff(hotelA.ID, models.RoleReceptionist)
	listed, err = svc.List(insider, ReservationFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestNightsBetweenRoundsUp(t *testing.T) {
	require.Equal(t, 2, models.NightsBetween(date(2026, 3, 10), date(2026, 3, 12)))

	// partial day rounds up to a full billed night
	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC)
	require.Equal(t, 2, models.NightsBetween(start, end))

	end = time.Date(2026, 3, 12, 16, 0, 0, 0, time.UTC)
	require.Equal(t, 3, models.NightsBetween(start, end))
}

func TestTransitionNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	_, err := svc.Transition(superAdmin(), 12345, models.ReservationConfirmed)
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, errors.Is(err, gorm.ErrRecordNotFound))
}
