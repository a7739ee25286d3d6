package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/middleware"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (ctl *ReservationController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	filter := services.ReservationFilter{Status: c.Query("status")}
	if raw := c.Query("hotelId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
			return
		}
		hotelID := uint(id)
		filter.HotelID = &hotelID
	}
	if raw := c.Query("guestId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid guest id")
			return
		}
		guestID := uint(id)
		filter.GuestID = &guestID
	}

	reservations, err := ctl.ReservationSvc.List(user, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

func (ctl *ReservationController) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reservation, err := ctl.ReservationSvc.Get(user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type CreateReservationPayload struct {
	GuestID         uint   `json:"guestId" binding:"required"`
	HotelID         uint   `json:"hotelId" binding:"required"`
	RoomIDs         []uint `json:"roomIds" binding:"required"`
	CheckInDate     string `json:"checkInDate" binding:"required"`
	CheckOutDate    string `json:"checkOutDate" binding:"required"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	Notes           string `json:"notes"`
	SpecialRequests string `json:"specialRequests"`
}

func (ctl *ReservationController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload CreateReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	checkIn, err := parseDate(payload.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check-in date")
		return
	}
	checkOut, err := parseDate(payload.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check-out date")
		return
	}

	reservation, err := ctl.ReservationSvc.Create(user, services.CreateReservationInput{
		GuestID:         payload.GuestID,
		HotelID:         payload.HotelID,
		RoomIDs:         payload.RoomIDs,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Adults:          payload.Adults,
		Children:        payload.Children,
		Notes:           payload.Notes,
		SpecialRequests: payload.SpecialRequests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

type UpdateReservationPayload struct {
	CheckInDate     *string `json:"checkInDate"`
	CheckOutDate    *string `json:"checkOutDate"`
	Adults          *int    `json:"adults"`
	Children        *int    `json:"children"`
	Notes           *string `json:"notes"`
	SpecialRequests *string `json:"specialRequests"`
}

func (ctl *ReservationController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload UpdateReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	in := services.UpdateReservationInput{
		Adults:          payload.Adults,
		Children:        payload.Children,
		Notes:           payload.Notes,
		SpecialRequests: payload.SpecialRequests,
	}
	if payload.CheckInDate != nil {
		parsed, err := parseDate(*payload.CheckInDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid check-in date")
			return
		}
		in.CheckInDate = &parsed
	}
	if payload.CheckOutDate != nil {
		parsed, err := parseDate(*payload.CheckOutDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid check-out date")
			return
		}
		in.CheckOutDate = &parsed
	}

	reservation, err := ctl.ReservationSvc.Update(user, id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctl *ReservationController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctl.ReservationSvc.Delete(user, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "reservation deleted"})
}

type TransitionPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus drives the reservation lifecycle. Room statuses follow as a
// side effect inside the service.
func (ctl *ReservationController) UpdateStatus(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload TransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	reservation, err := ctl.ReservationSvc.Transition(user, id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type ChargePayload struct {
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount" binding:"required"`
	Quantity    int     `json:"quantity"`
}

func (ctl *ReservationController) AddCharge(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload ChargePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	charge, err := ctl.ReservationSvc.AddCharge(user, id, services.AddChargeInput{
		Description: payload.Description,
		Category:    payload.Category,
		Amount:      payload.Amount,
		Quantity:    payload.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, charge)
}

func (ctl *ReservationController) ListCharges(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	charges, err := ctl.ReservationSvc.ListCharges(user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, charges)
}

// Statement renders the full folio: room charges by night, extra charges by
// category, payment history and the outstanding balance.
func (ctl *ReservationController) Statement(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	statement, err := ctl.ReservationSvc.Statement(user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, statement)
}
