package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"hotelchain-backend/middleware"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type RoomTypeController struct {
	RoomTypeSvc *services.RoomTypeService
}

func NewRoomTypeController(svc *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{RoomTypeSvc: svc}
}

func (ctl *RoomTypeController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var hotelID *uint
	if raw := c.Query("hotelId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
			return
		}
		v := uint(id)
		hotelID = &v
	}

	roomTypes, err := ctl.RoomTypeSvc.List(user, hotelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, roomTypes)
}

type RoomTypePayload struct {
	HotelID      uint           `json:"hotelId"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	BaseRate     float64        `json:"baseRate"`
	MaxOccupancy int            `json:"maxOccupancy"`
	Amenities    datatypes.JSON `json:"amenities"`
}

func (p RoomTypePayload) toInput() services.RoomTypeInput {
	return services.RoomTypeInput{
		HotelID:      p.HotelID,
		Name:         p.Name,
		Description:  p.Description,
		BaseRate:     p.BaseRate,
		MaxOccupancy: p.MaxOccupancy,
		Amenities:    p.Amenities,
	}
}

func (ctl *RoomTypeController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload RoomTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	roomType, err := ctl.RoomTypeSvc.Create(user, payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, roomType)
}

func (ctl *RoomTypeController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}

	var payload RoomTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	roomType, err := ctl.RoomTypeSvc.Update(user, uint(id), payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, roomType)
}

func (ctl *RoomTypeController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}

	if err := ctl.RoomTypeSvc.Delete(user, uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room type deleted"})
}
