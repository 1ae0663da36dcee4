package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/repository"
	"heart-matching-backend/pkg/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	facilities *FacilityService
	auditRepo  repository.AuditRecorder
	logger     *zap.Logger
}

func NewAuthService(facilities *FacilityService, auditRepo repository.AuditRecorder, logger *zap.Logger) *AuthService {
	return &AuthService{
		facilities: facilities,
		auditRepo:  auditRepo,
		logger:     logger.Named("auth"),
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Facility    models.Facility `json:"facility"`
}

// Login opens a session for a registered facility. The facility name is the session identity.
func (s *AuthService) Login(ctx context.Context, facilityName string) (*LoginResponse, error) {
	facilityName = strings.TrimSpace(facilityName)
	if facilityName == "" {
		return nil, ErrEmptyFacilityName
	}

	facility, err := s.facilities.GetFacilityByName(facilityName)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issue(*facility)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.auditRepo, s.logger, facility.Name, "facility_login",
		fmt.Sprintf("Facility %s logged in", facility.Name))
	return resp, nil
}

// Register creates a facility and opens a session for it
func (s *AuthService) Register(ctx context.Context, input models.FacilityInput) (*LoginResponse, error) {
	facility, err := s.facilities.RegisterFacility(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.issue(*facility)
}

func (s *AuthService) issue(facility models.Facility) (*LoginResponse, error) {
	token, err := utils.GenerateSessionToken(facility.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(utils.GetSessionExpiry()),
		Facility:    facility,
	}, nil
}
