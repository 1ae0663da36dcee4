package handler

import (
	"net/http"

	"heart-matching-backend/internal/middleware"
	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

type SubmitApplicationRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

type RespondApplicationRequest struct {
	ResponseNote string `json:"response_note" binding:"max=2000"`
}

// SubmitApplication applies for a patient on behalf of the calling facility
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.applicationService.SubmitApplication(c.Request.Context(), c.Param("id"), middleware.CurrentFacility(c), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, app)
}

// GetReceived lists applications for the caller's own patients
func (h *ApplicationHandler) GetReceived(c *gin.Context) {
	apps := h.applicationService.ReceivedApplications(middleware.CurrentFacility(c))
	utils.SuccessResponse(c, gin.H{
		"applications": apps,
		"count":        len(apps),
	})
}

// GetSent lists applications the caller submitted
func (h *ApplicationHandler) GetSent(c *gin.Context) {
	apps := h.applicationService.SentApplications(middleware.CurrentFacility(c))
	utils.SuccessResponse(c, gin.H{
		"applications": apps,
		"count":        len(apps),
	})
}

// Approve accepts an application. Ownership is checked by middleware.
func (h *ApplicationHandler) Approve(c *gin.Context) {
	h.respond(c, h.applicationService.ApproveApplication)
}

// Reject declines an application. Ownership is checked by middleware.
func (h *ApplicationHandler) Reject(c *gin.Context) {
	h.respond(c, h.applicationService.RejectApplication)
}

func (h *ApplicationHandler) respond(c *gin.Context, resolve resolveFunc) {
	var req RespondApplicationRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := resolve(c.Request.Context(), c.Param("id"), req.ResponseNote)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}
