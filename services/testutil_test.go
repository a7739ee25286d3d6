package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelchain-backend/models"
)

// newTestDB opens a per-test in-memory database to avoid cross-test
// interference.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Hotel{},
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.Charge{},
		&models.Transaction{},
		&models.Report{},
	))
	return db
}

func seedHotel(t *testing.T, db *gorm.DB, code string) models.Hotel {
	t.Helper()
	hotel := models.Hotel{Name: "Hotel " + code, Code: code, City: "Bangkok", IsActive: true}
	require.NoError(t, db.Create(&hotel).Error)
	return hotel
}

func seedRoomType(t *testing.T, db *gorm.DB, hotelID uint, rate float64) models.RoomType {
	t.Helper()
	roomType := models.RoomType{HotelID: hotelID, Name: "Standard", BaseRate: rate, MaxOccupancy: 2}
	require.NoError(t, db.Create(&roomType).Error)
	return roomType
}

func seedRoom(t *testing.T, db *gorm.DB, hotelID, roomTypeID uint, number string) models.Room {
	t.Helper()
	room := models.Room{
		HotelID:    hotelID,
		RoomTypeID: roomTypeID,
		Number:     number,
		Floor:      1,
		Status:     models.RoomAvailable,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedGuest(t *testing.T, db *gorm.DB, document string) models.Guest {
	t.Helper()
	guest := models.Guest{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Document:     document,
		DocumentType: "PASSPORT",
	}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

func superAdmin() models.AuthUser {
	return models.AuthUser{ID: 1, Email: "root@chain.test", Role: models.RoleSuperAdmin}
}

func hotelStaff(hotelID uint, role models.Role) models.AuthUser {
	return models.AuthUser{ID: 2, Email: "staff@chain.test", Role: role, HotelID: &hotelID}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func roomStatus(t *testing.T, db *gorm.DB, roomID uint) string {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, roomID).Error)
	return room.Status
}
