package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/middleware"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

func (ctl *DashboardController) Stats(c *gin.Context) {
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

	stats, err := ctl.DashboardSvc.Stats(user, hotelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

func (ctl *DashboardController) ChainStats(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	overview, err := ctl.DashboardSvc.ChainStats(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, overview)
}
