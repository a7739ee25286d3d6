package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/middleware"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type TransactionController struct {
	TransactionSvc *services.TransactionService
}

func NewTransactionController(svc *services.TransactionService) *TransactionController {
	return &TransactionController{TransactionSvc: svc}
}

func (ctl *TransactionController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	filter := services.TransactionFilter{Type: c.Query("type")}
	if raw := c.Query("hotelId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
			return
		}
		hotelID := uint(id)
		filter.HotelID = &hotelID
	}
	if raw := c.Query("reservationId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid reservation id")
			return
		}
		reservationID := uint(id)
		filter.ReservationID = &reservationID
	}

	transactions, err := ctl.TransactionSvc.List(user, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, transactions)
}

type CreateTransactionPayload struct {
	Amount        float64 `json:"amount" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	PaymentMethod string  `json:"paymentMethod"`
	Reference     string  `json:"reference"`
	Description   string  `json:"description"`
	ReservationID *uint   `json:"reservationId"`
	HotelID       *uint   `json:"hotelId"`
}

func (ctl *TransactionController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload CreateTransactionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	transaction, err := ctl.TransactionSvc.Create(user, services.CreateTransactionInput{
		Amount:        payload.Amount,
		Type:          payload.Type,
		PaymentMethod: payload.PaymentMethod,
		Reference:     payload.Reference,
		Description:   payload.Description,
		ReservationID: payload.ReservationID,
		HotelID:       payload.HotelID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, transaction)
}
