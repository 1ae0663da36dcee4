package handler

import (
	"errors"
	"net/http"

	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, err error) {
	var verrs service.ValidationErrors
	if errors.As(err, &verrs) {
		utils.ValidationErrorResponse(c, verrs)
		return
	}

	var cannot *service.CannotApplyError
	if errors.As(err, &cannot) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   cannot.Error(),
			"reason":  cannot.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrPatientNotFound),
		errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrFacilityNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrApplicationResolved),
		errors.Is(err, service.ErrFacilityNameTaken):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrEmptyFacilityName):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
