package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

// respondServiceError maps service-layer errors onto HTTP statuses. Anything
// unrecognized is logged and reported as a generic 500 so internals never
// leak to clients.
func respondServiceError(c *gin.Context, err error) {
	var invalidTransition *services.InvalidTransitionError

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "access denied")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, err.Error())
	case services.IsValidation(err),
		errors.As(err, &invalidTransition),
		errors.Is(err, services.ErrRoomConflict),
		errors.Is(err, services.ErrRoomsUnavailable),
		errors.Is(err, services.ErrRoomTypeInUse),
		errors.Is(err, services.ErrRoomInUse),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateDocument),
		errors.Is(err, services.ErrDuplicateHotelCode),
		errors.Is(err, services.ErrDuplicateRoom):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}

// parseDate accepts both plain dates and full timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
