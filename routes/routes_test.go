package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelchain-backend/controllers"
	"hotelchain-backend/models"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	r := SetupRouter(Controllers{
		Auth:        controllers.NewAuthController(services.NewAuthService(db)),
		Hotel:       controllers.NewHotelController(services.NewHotelService(db)),
		Room:        controllers.NewRoomController(services.NewRoomService(db)),
		RoomType:    controllers.NewRoomTypeController(services.NewRoomTypeService(db)),
		Guest:       controllers.NewGuestController(services.NewGuestService(db)),
		Reservation: controllers.NewReservationController(services.NewReservationService(db)),
		Transaction: controllers.NewTransactionController(services.NewTransactionService(db)),
		Report:      controllers.NewReportController(services.NewReportService(db)),
		Dashboard:   controllers.NewDashboardController(services.NewDashboardService(db)),
		User:        controllers.NewUserController(services.NewUserService(db)),
	})
	return r, db
}

func httpDo(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, "error response: %s", env.Error)
	if dest != nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, hotelID *uint) models.User {
	t.Helper()
	user := models.User{
		Email:     fmt.Sprintf("%s@chain.test", role),
		Password:  "irrelevant",
		FirstName: "Test",
		LastName:  string(role),
		Role:      role,
		HotelID:   hotelID,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	w := httpDo(r, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthGating(t *testing.T) {
	r, db := setupRouter(t)

	w := httpDo(r, "GET", "/api/reservations", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httpDo(r, "GET", "/api/reservations", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	hotel := models.Hotel{Name: "Hotel BKK", Code: "BKK", IsActive: true}
	require.NoError(t, db.Create(&hotel).Error)

	staff := tokenFor(t, seedUser(t, db, models.RoleStaff, &hotel.ID))
	receptionist := tokenFor(t, seedUser(t, db, models.RoleReceptionist, &hotel.ID))
	manager := tokenFor(t, seedUser(t, db, models.RoleManager, &hotel.ID))

	// staff can read but not write
	w = httpDo(r, "GET", "/api/rooms", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = httpDo(r, "POST", "/api/rooms", staff, gin.H{"hotelId": hotel.ID, "roomTypeId": 1, "number": "101"})
	require.Equal(t, http.StatusForbidden, w.Code)
	w = httpDo(r, "POST", "/api/guests", staff, gin.H{"firstName": "A", "lastName": "B", "document": "D1"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// receptionist still below the manager gates
	w = httpDo(r, "POST", "/api/rooms", receptionist, gin.H{"hotelId": hotel.ID, "roomTypeId": 1, "number": "101"})
	require.Equal(t, http.StatusForbidden, w.Code)
	w = httpDo(r, "GET", "/api/reports?type=revenue", receptionist, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = httpDo(r, "GET", "/api/users", manager, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// hotel creation is super admin territory
	w = httpDo(r, "POST", "/api/hotels", manager, gin.H{"name": "X", "code": "X"})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestFullBookingFlow(t *testing.T) {
	r, _ := setupRouter(t)

	// first signup becomes SUPER_ADMIN
	w := httpDo(r, "POST", "/api/auth/signup", "", gin.H{
		"email": "boss@chain.test", "password": "secret1",
		"firstName": "Grace", "lastName": "Hopper",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var boss models.User
	decode(t, w, &boss)
	require.Equal(t, models.RoleSuperAdmin, boss.Role)

	// and the cookie is set
	found := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == utils.AuthCookieName && cookie.Value != "" {
			found = true
		}
	}
	require.True(t, found)

	token := tokenFor(t, boss)

	var hotel models.Hotel
	w = httpDo(r, "POST", "/api/hotels", token, gin.H{"name": "Hotel BKK", "code": "BKK", "city": "Bangkok"})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &hotel)

	var roomType models.RoomType
	w = httpDo(r, "POST", "/api/room-types", token, gin.H{
		"hotelId": hotel.ID, "name": "Deluxe", "baseRate": 120.0, "maxOccupancy": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &roomType)

	var room models.Room
	w = httpDo(r, "POST", "/api/rooms", token, gin.H{
		"hotelId": hotel.ID, "roomTypeId": roomType.ID, "number": "101", "floor": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &room)

	var guest models.Guest
	w = httpDo(r, "POST", "/api/guests", token, gin.H{
		"firstName": "Ada", "lastName": "Lovelace", "document": "P100",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &guest)

	var reservation models.Reservation
	w = httpDo(r, "POST", "/api/reservations", token, gin.H{
		"guestId": guest.ID, "hotelId": hotel.ID, "roomIds": []uint{room.ID},
		"checkInDate": "2026-03-10", "checkOutDate": "2026-03-12", "adults": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &reservation)
	require.Equal(t, models.ReservationPending, reservation.Status)
	require.Equal(t, 240.0, reservation.TotalAmount)

	// double booking over the same dates is rejected
	w = httpDo(r, "POST", "/api/reservations", token, gin.H{
		"guestId": guest.ID, "hotelId": hotel.ID, "roomIds": []uint{room.ID},
		"checkInDate": "2026-03-11", "checkOutDate": "2026-03-13",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httpDo(r, "PATCH", fmt.Sprintf("/api/reservations/%d/status", reservation.ID), token, gin.H{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &reservation)
	require.Equal(t, models.ReservationConfirmed, reservation.Status)

	// skipping check-in entirely is an invalid transition
	w = httpDo(r, "PATCH", fmt.Sprintf("/api/reservations/%d/status", reservation.ID), token, gin.H{"status": "CHECKED_OUT"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httpDo(r, "POST", fmt.Sprintf("/api/reservations/%d/charges", reservation.ID), token, gin.H{
		"description": "Minibar", "category": "MINIBAR", "amount": 30.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(r, "POST", "/api/transactions", token, gin.H{
		"amount": 270.0, "type": "PAYMENT", "paymentMethod": "CARD", "reservationId": reservation.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var statement services.Statement
	w = httpDo(r, "GET", fmt.Sprintf("/api/reservations/%d/statement", reservation.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &statement)
	require.Equal(t, 270.0, statement.Summary.TotalCharges)
	require.Equal(t, 270.0, statement.Summary.TotalPayments)
	require.Equal(t, 0.0, statement.Summary.Balance)
	require.Equal(t, models.PaymentStatusPaid, statement.Summary.PaymentStatus)

	// signin works with the created credentials
	w = httpDo(r, "POST", "/api/auth/signin", "", gin.H{"email": "boss@chain.test", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = httpDo(r, "POST", "/api/auth/signin", "", gin.H{"email": "boss@chain.test", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// profile endpoint round-trips the identity
	var me models.User
	w = httpDo(r, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &me)
	require.Equal(t, boss.ID, me.ID)
}
