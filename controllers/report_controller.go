package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/middleware"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type ReportController struct {
	ReportSvc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{ReportSvc: svc}
}

// reportParams reads type, hotelId and date range from the query string.
// The range defaults to the current month.
func reportParams(c *gin.Context) (reportType string, hotelID *uint, start, end time.Time, ok bool) {
	reportType = c.Query("type")

	if raw := c.Query("hotelId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
			return "", nil, time.Time{}, time.Time{}, false
		}
		v := uint(id)
		hotelID = &v
	}

	now := time.Now()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid start date")
			return "", nil, time.Time{}, time.Time{}, false
		}
		start = parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid end date")
			return "", nil, time.Time{}, time.Time{}, false
		}
		end = parsed
	}
	return reportType, hotelID, start, end, true
}

func (ctl *ReportController) Generate(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	reportType, hotelID, start, end, ok := reportParams(c)
	if !ok {
		return
	}

	report, err := ctl.ReportSvc.Generate(user, reportType, hotelID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

type SaveReportPayload struct {
	Type      string `json:"type" binding:"required"`
	HotelID   *uint  `json:"hotelId"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

func (ctl *ReportController) Save(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload SaveReportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := parseDate(payload.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := parseDate(payload.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end date")
		return
	}

	report, err := ctl.ReportSvc.Save(user, payload.Type, payload.HotelID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, report)
}
