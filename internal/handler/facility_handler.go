package handler

import (
	"net/http"

	"heart-matching-backend/internal/middleware"
	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	facilityService *service.FacilityService
}

func NewFacilityHandler(facilityService *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{
		facilityService: facilityService,
	}
}

// ListFacilities returns facilities matching the search, type and area query
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	var filter models.FacilityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid filter")
		return
	}

	facilities := h.facilityService.ListFacilities(filter)
	utils.SuccessResponse(c, gin.H{
		"facilities": facilities,
		"count":      len(facilities),
	})
}

// CreateFacility registers a new facility
func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var req models.FacilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	facility, err := h.facilityService.RegisterFacility(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, facility)
}

// GetMyFacility returns the caller's facility record
func (h *FacilityHandler) GetMyFacility(c *gin.Context) {
	facility, err := h.facilityService.GetFacilityByName(middleware.CurrentFacility(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, facility)
}

// GetFacility returns a facility by ID
func (h *FacilityHandler) GetFacility(c *gin.Context) {
	facility, err := h.facilityService.GetFacilityByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, facility)
}

// UpdateFacility replaces the caller's facility details. Ownership is checked by middleware.
func (h *FacilityHandler) UpdateFacility(c *gin.Context) {
	var req models.FacilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	facility, err := h.facilityService.UpdateFacility(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, facility)
}

// DeleteFacility removes the caller's facility. Ownership is checked by middleware.
func (h *FacilityHandler) DeleteFacility(c *gin.Context) {
	if err := h.facilityService.DeleteFacility(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Facility deleted successfully")
}
