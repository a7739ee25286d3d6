package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

func (ctl *GuestController) List(c *gin.Context) {
	guests, err := ctl.GuestSvc.List(c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

type GuestPayload struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Document     string `json:"document" binding:"required"`
	DocumentType string `json:"documentType"`
	Nationality  string `json:"nationality"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	BirthDate    string `json:"birthDate"`
	Notes        string `json:"notes"`
}

func (ctl *GuestController) Create(c *gin.Context) {
	var payload GuestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var birthDate *time.Time
	if payload.BirthDate != "" {
		parsed, err := parseDate(payload.BirthDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid birth date")
			return
		}
		birthDate = &parsed
	}

	guest, err := ctl.GuestSvc.Create(services.GuestInput{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Document:     payload.Document,
		DocumentType: payload.DocumentType,
		Nationality:  payload.Nationality,
		Address:      payload.Address,
		City:         payload.City,
		State:        payload.State,
		Country:      payload.Country,
		BirthDate:    birthDate,
		Notes:        payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}
