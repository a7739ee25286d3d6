package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/middleware"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type HotelController struct {
	HotelSvc *services.HotelService
}

func NewHotelController(svc *services.HotelService) *HotelController {
	return &HotelController{HotelSvc: svc}
}

type HotelPayload struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	ZipCode     string `json:"zipCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

func (p HotelPayload) toInput() services.HotelInput {
	return services.HotelInput{
		Name:        p.Name,
		Code:        p.Code,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
		ZipCode:     p.ZipCode,
		Phone:       p.Phone,
		Email:       p.Email,
		Description: p.Description,
	}
}

func (ctl *HotelController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	hotels, err := ctl.HotelSvc.List(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func (ctl *HotelController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload HotelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	hotel, err := ctl.HotelSvc.Create(user, payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}

func (ctl *HotelController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
		return
	}

	var payload HotelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	hotel, err := ctl.HotelSvc.Update(user, uint(id), payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}
