package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/middleware"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

func (ctl *RoomController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	filter := services.RoomFilter{Status: c.Query("status")}
	if raw := c.Query("hotelId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
			return
		}
		hotelID := uint(id)
		filter.HotelID = &hotelID
	}

	rooms, err := ctl.RoomSvc.List(user, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

type CreateRoomPayload struct {
	HotelID    uint   `json:"hotelId" binding:"required"`
	RoomTypeID uint   `json:"roomTypeId" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Floor      int    `json:"floor"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

func (ctl *RoomController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload CreateRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := ctl.RoomSvc.Create(user, services.CreateRoomInput{
		HotelID:    payload.HotelID,
		RoomTypeID: payload.RoomTypeID,
		Number:     payload.Number,
		Floor:      payload.Floor,
		Status:     payload.Status,
		Notes:      payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

type UpdateRoomPayload struct {
	Number     *string `json:"number"`
	Floor      *int    `json:"floor"`
	RoomTypeID *uint   `json:"roomTypeId"`
	Status     *string `json:"status"`
	Notes      *string `json:"notes"`
}

func (ctl *RoomController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var payload UpdateRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := ctl.RoomSvc.Update(user, uint(id), services.UpdateRoomInput{
		Number:     payload.Number,
		Floor:      payload.Floor,
		RoomTypeID: payload.RoomTypeID,
		Status:     payload.Status,
		Notes:      payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	if err := ctl.RoomSvc.Deactivate(user, uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deactivated"})
}
