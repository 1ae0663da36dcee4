package handler

import (
	"net/http"

	"heart-matching-backend/internal/middleware"
	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService  *service.PatientService
	matchingService *service.MatchingService
}

func NewPatientHandler(patientService *service.PatientService, matchingService *service.MatchingService) *PatientHandler {
	return &PatientHandler{
		patientService:  patientService,
		matchingService: matchingService,
	}
}

// PatientView is a patient annotated for the calling facility
type PatientView struct {
	models.Patient
	ApplicationStatus models.ViewerApplicationStatus `json:"application_status"`
	CanApply          bool                           `json:"can_apply"`
}

func viewFor(p models.Patient, facilityName string) PatientView {
	return PatientView{
		Patient:           p,
		ApplicationStatus: service.ApplicationStatusFor(p, facilityName),
		CanApply:          service.CanApplyForPatient(p, facilityName),
	}
}

// ListPatients returns patients matching the query filters
func (h *PatientHandler) ListPatients(c *gin.Context) {
	var filter models.PatientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid filter")
		return
	}

	caller := middleware.CurrentFacility(c)
	patients := h.patientService.ListPatients(filter)
	views := make([]PatientView, len(patients))
	for i, p := range patients {
		views[i] = viewFor(p, caller)
	}

	utils.SuccessResponse(c, gin.H{
		"patients": views,
		"count":    len(views),
	})
}

// CreatePatient registers a patient owned by the calling facility
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req models.PatientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.patientService.RegisterPatient(c.Request.Context(), req, middleware.CurrentFacility(c))
	if !result.Success {
		utils.ValidationErrorResponse(c, result.Errors)
		return
	}

	utils.CreatedResponse(c, result.Patient)
}

// GetPatient returns one patient
func (h *PatientHandler) GetPatient(c *gin.Context) {
	patient, err := h.patientService.GetPatient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, viewFor(*patient, middleware.CurrentFacility(c)))
}

// GetStats returns patient counts by status and ward
func (h *PatientHandler) GetStats(c *gin.Context) {
	utils.SuccessResponse(c, h.patientService.Stats())
}

// GetMatches ranks the eligible facilities for a patient
func (h *PatientHandler) GetMatches(c *gin.Context) {
	matches, err := h.matchingService.MatchesForPatient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, matches)
}
