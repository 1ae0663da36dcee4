package handler

import (
	"heart-matching-backend/internal/middleware"
	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	matchingService *service.MatchingService
}

func NewMatchingHandler(matchingService *service.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		matchingService: matchingService,
	}
}

// GetForMyPatients ranks other facilities against each of the caller's patients
func (h *MatchingHandler) GetForMyPatients(c *gin.Context) {
	results := h.matchingService.FacilitiesForMyPatients(middleware.CurrentFacility(c))
	utils.SuccessResponse(c, gin.H{
		"patients": results,
		"count":    len(results),
	})
}

// GetForMyFacility ranks other facilities' patients against the caller's facility
func (h *MatchingHandler) GetForMyFacility(c *gin.Context) {
	matches, err := h.matchingService.PatientsForMyFacility(middleware.CurrentFacility(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}
