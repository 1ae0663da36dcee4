package handler

import (
	"heart-matching-backend/internal/middleware"
	"heart-matching-backend/internal/service"
	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services groups the collaborators the HTTP layer calls into
type Services struct {
	Auth         *service.AuthService
	Patients     *service.PatientService
	Applications *service.ApplicationService
	Facilities   *service.FacilityService
	Matching     *service.MatchingService
	Chat         *service.ChatService
}

// NewRouter builds the gin engine with every route under /api/v1
func NewRouter(svc Services, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	authHandler := NewAuthHandler(svc.Auth, svc.Facilities)
	patientHandler := NewPatientHandler(svc.Patients, svc.Matching)
	applicationHandler := NewApplicationHandler(svc.Applications)
	facilityHandler := NewFacilityHandler(svc.Facilities)
	matchingHandler := NewMatchingHandler(svc.Matching)
	chatHandler := NewChatHandler(svc.Chat)
	ownership := middleware.NewOwnershipMiddleware(svc.Applications, svc.Facilities)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "heart-matching-backend",
		})
	})

	api := r.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
	}

	// Everything below requires a session
	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware())

	patients := secured.Group("/patients")
	{
		patients.GET("", patientHandler.ListPatients)
		patients.POST("", patientHandler.CreatePatient)
		patients.GET("/stats", patientHandler.GetStats)
		patients.GET("/:id", patientHandler.GetPatient)
		patients.GET("/:id/matches", patientHandler.GetMatches)
		patients.POST("/:id/applications", applicationHandler.SubmitApplication)
	}

	applications := secured.Group("/applications")
	{
		applications.GET("/received", applicationHandler.GetReceived)
		applications.GET("/sent", applicationHandler.GetSent)
		applications.POST("/:id/approve", ownership.RequireApplicationOwner(), applicationHandler.Approve)
		applications.POST("/:id/reject", ownership.RequireApplicationOwner(), applicationHandler.Reject)
	}

	facilities := secured.Group("/facilities")
	{
		facilities.GET("", facilityHandler.ListFacilities)
		facilities.POST("", facilityHandler.CreateFacility)
		facilities.GET("/me", facilityHandler.GetMyFacility)
		facilities.GET("/:id", facilityHandler.GetFacility)
		facilities.PUT("/:id", ownership.RequireFacilitySelf(), facilityHandler.UpdateFacility)
		facilities.DELETE("/:id", ownership.RequireFacilitySelf(), facilityHandler.DeleteFacility)
	}

	matching := secured.Group("/matching")
	{
		matching.GET("/my-patients", matchingHandler.GetForMyPatients)
		matching.GET("/my-facility", matchingHandler.GetForMyFacility)
	}

	chats := secured.Group("/chats")
	{
		chats.GET("", chatHandler.ListChats)
		chats.GET("/unread", chatHandler.GetUnread)
		chats.GET("/templates", chatHandler.GetTemplates)
		chats.GET("/:patient_id/messages", chatHandler.GetMessages)
		chats.POST("/:patient_id/messages", chatHandler.SendMessage)
		chats.POST("/:patient_id/read", chatHandler.MarkRead)
		chats.PUT("/:patient_id/status", chatHandler.UpdateStatus)
	}

	return r
}
