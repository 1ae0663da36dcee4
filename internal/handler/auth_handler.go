package handler

import (
	"net/http"

	"heart-matching-backend/internal/middleware"
	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService     *service.AuthService
	facilityService *service.FacilityService
}

func NewAuthHandler(authService *service.AuthService, facilityService *service.FacilityService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		facilityService: facilityService,
	}
}

type LoginRequest struct {
	FacilityName string `json:"facility_name" binding:"required"`
}

// Login opens a session for a registered facility
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.FacilityName)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, response)
}

// Register creates a facility and logs it in
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.FacilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, response)
}

// Me returns the facility of the current session
func (h *AuthHandler) Me(c *gin.Context) {
	facility, err := h.facilityService.GetFacilityByName(middleware.CurrentFacility(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, facility)
}
