package middleware

import (
	"errors"
	"net/http"

	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OwnershipMiddleware restricts mutations to the facility that owns the target record
type OwnershipMiddleware struct {
	applications *service.ApplicationService
	facilities   *service.FacilityService
}

func NewOwnershipMiddleware(applications *service.ApplicationService, facilities *service.FacilityService) *OwnershipMiddleware {
	return &OwnershipMiddleware{
		applications: applications,
		facilities:   facilities,
	}
}

// RequireApplicationOwner lets only the facility that registered the application's patient continue.
// Expected path parameter: :id
func (m *OwnershipMiddleware) RequireApplicationOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := m.applications.GetApplication(c.Param("id"))
		if err != nil {
			if errors.Is(err, service.ErrApplicationNotFound) {
				utils.ErrorResponse(c, http.StatusNotFound, "Application not found")
			} else {
				utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load application")
			}
			c.Abort()
			return
		}

		if view.Patient.Facility != CurrentFacility(c) {
			utils.ErrorResponse(c, http.StatusForbidden, "Only the registering facility can respond to this application")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireFacilitySelf lets a facility modify only its own record.
// Expected path parameter: :id
func (m *OwnershipMiddleware) RequireFacilitySelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		facility, err := m.facilities.GetFacilityByID(c.Param("id"))
		if err != nil {
			if errors.Is(err, service.ErrFacilityNotFound) {
				utils.ErrorResponse(c, http.StatusNotFound, "Facility not found")
			} else {
				utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load facility")
			}
			c.Abort()
			return
		}

		if facility.Name != CurrentFacility(c) {
			utils.ErrorResponse(c, http.StatusForbidden, "A facility can only modify its own record")
			c.Abort()
			return
		}

		c.Next()
	}
}
