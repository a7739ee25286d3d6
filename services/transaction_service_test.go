package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelchain-backend/models"
)

func seedReservation(t *testing.T, db *gorm.DB, svc *ReservationService, hotelID uint) *models.Reservation {
	t.Helper()
	roomType := seedRoomType(t, db, hotelID, 100)
	room := seedRoom(t, db, hotelID, roomType.ID, "101")
	guest := seedGuest(t, db, "P100")

	reservation, err := svc.Create(superAdmin(), CreateReservationInput{
		GuestID: guest.ID, HotelID: hotelID, RoomIDs: []uint{room.ID},
		CheckInDate: date(2026, 3, 10), CheckOutDate: date(2026, 3, 12),
	})
	require.NoError(t, err)
	return reservation
}

func TestPaymentsMovePaidAmount(t *testing.T) {
	db := newTestDB(t)
	resSvc := NewReservationService(db)
	svc := NewTransactionService(db)

	hotel := seedHotel(t, db, "BKK")
	reservation := seedReservation(t, db, resSvc, hotel.ID)
	require.Equal(t, 200.0, reservation.TotalAmount)

	paidAmount := func() float64 {
		var r models.Reservation
		require.NoError(t, db.First(&r, reservation.ID).Error)
		return r.PaidAmount
	}

	_, err := svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 150, Type: models.TransactionPayment, ReservationID: &reservation.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 150.0, paidAmount())

	_, err = svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 50, Type: models.TransactionPayment, ReservationID: &reservation.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 200.0, paidAmount())

	_, err = svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 30, Type: models.TransactionRefund, ReservationID: &reservation.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 170.0, paidAmount())

	// adjustments record money facts without touching paidAmount
	_, err = svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 10, Type: models.TransactionAdjustment, ReservationID: &reservation.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 170.0, paidAmount())
}

func TestCreateTransactionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	hotel := seedHotel(t, db, "BKK")

	_, err := svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 0, Type: models.TransactionPayment, HotelID: &hotel.ID,
	})
	require.True(t, IsValidation(err))

	_, err = svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 10, Type: "GIFT", HotelID: &hotel.ID,
	})
	require.True(t, IsValidation(err))

	// super admin must name a hotel for unlinked entries
	_, err = svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 10, Type: models.TransactionPayment,
	})
	require.True(t, IsValidation(err))

	missing := uint(999)
	_, err = svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 10, Type: models.TransactionPayment, ReservationID: &missing,
	})
	require.ErrorIs(t, err, ErrNotFound)

	// defaults
	entry, err := svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 10, Type: models.TransactionPayment, HotelID: &hotel.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "CASH", entry.PaymentMethod)
	require.Equal(t, models.PaymentStatusPaid, entry.PaymentStatus)
}

func TestTransactionListScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)

	hotelA := seedHotel(t, db, "BKK")
	hotelB := seedHotel(t, db, "CNX")

	for _, hid := range []uint{hotelA.ID, hotelB.ID} {
		_, err := svc.Create(superAdmin(), CreateTransactionInput{
			Amount: 100, Type: models.TransactionPayment, HotelID: &hid,
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(superAdmin(), CreateTransactionInput{
		Amount: 20, Type: models.TransactionRefund, HotelID: &hotelA.ID,
	})
	require.NoError(t, err)

	all, err := svc.List(superAdmin(), TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	scoped, err := svc.List(hotelStaff(hotelA.ID, models.RoleReceptionist), TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, scoped, 2)

	refunds, err := svc.List(superAdmin(), TransactionFilter{Type: models.TransactionRefund})
	require.NoError(t, err)
	require.Len(t, refunds, 1)

	// staff of hotel B cannot pay into hotel A's ledger
	_, err = svc.Create(hotelStaff(hotelB.ID, models.RoleReceptionist), CreateTransactionInput{
		Amount: 5, Type: models.TransactionPayment, HotelID: &hotelA.ID,
	})
	require.NoError(t, err) // hotel comes from the caller, not the payload
	mine, err := svc.List(hotelStaff(hotelB.ID, models.RoleReceptionist), TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
}
