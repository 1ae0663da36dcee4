package service

import (
	"context"
	"fmt"
	"sort"

	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/repository"

	"go.uber.org/zap"
)

type ApplicationService struct {
	registry  *Registry
	auditRepo repository.AuditRecorder
	logger    *zap.Logger
}

func NewApplicationService(registry *Registry, auditRepo repository.AuditRecorder, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		registry:  registry,
		auditRepo: auditRepo,
		logger:    logger.Named("applications"),
	}
}

// CheckCanApply returns nil when facilityName may submit an application for p,
// otherwise a *CannotApplyError naming the first failed precondition.
// A rejected application still counts as existing, so rejection blocks re-application.
func CheckCanApply(p models.Patient, facilityName string) error {
	fail := func(reason string) error {
		return &CannotApplyError{PatientID: p.ID, Facility: facilityName, Reason: reason}
	}

	if p.Facility == facilityName {
		return fail(ReasonOwnPatient)
	}
	for _, app := range p.Applications {
		if app.ApplicantFacility == facilityName {
			return fail(ReasonAlreadyApplied)
		}
	}
	if HasApprovedApplication(p) {
		return fail(ReasonAlreadyApproved)
	}
	if p.Status != models.PatientAvailable {
		return fail(ReasonPatientUnavailable)
	}
	return nil
}

// CanApplyForPatient is the boolean form of CheckCanApply
func CanApplyForPatient(p models.Patient, facilityName string) bool {
	return CheckCanApply(p, facilityName) == nil
}

// HasApprovedApplication reports whether any application for p is approved
func HasApprovedApplication(p models.Patient) bool {
	for _, app := range p.Applications {
		if app.Status == models.ApplicationApproved {
			return true
		}
	}
	return false
}

// ApplicationStatusFor describes p's applications as seen by facilityName
func ApplicationStatusFor(p models.Patient, facilityName string) models.ViewerApplicationStatus {
	if len(p.Applications) == 0 {
		return models.ViewerNone
	}
	for _, app := range p.Applications {
		if app.ApplicantFacility == facilityName {
			return models.ViewerApplicationStatus(app.Status)
		}
	}
	return models.ViewerOthers
}

// CanApply looks up the patient and evaluates the submission preconditions for facilityName
func (s *ApplicationService) CanApply(patientID, facilityName string) (bool, error) {
	var (
		err   error
		found bool
	)
	s.registry.read(func() {
		i := s.registry.patientIndexLocked(patientID)
		if i < 0 {
			return
		}
		found = true
		err = CheckCanApply(s.registry.patients[i], facilityName)
	})
	if !found {
		return false, ErrPatientNotFound
	}
	if err != nil {
		return false, nil
	}
	return true, nil
}

// SubmitApplication creates a pending application from facilityName for the patient.
// Preconditions are re-checked under the write lock. Patient status is unchanged.
func (s *ApplicationService) SubmitApplication(ctx context.Context, patientID, facilityName, note string) (*models.Application, error) {
	if facilityName == "" {
		return nil, ErrEmptyFacilityName
	}

	var created models.Application
	err := s.registry.mutate(ctx, func() error {
		r := s.registry
		i := r.patientIndexLocked(patientID)
		if i < 0 {
			return ErrPatientNotFound
		}
		if err := CheckCanApply(r.patients[i], facilityName); err != nil {
			return err
		}

		id, err := r.uniqueApplicationIDLocked()
		if err != nil {
			return err
		}
		created = models.Application{
			ID:                id,
			PatientID:         patientID,
			ApplicantFacility: facilityName,
			Status:            models.ApplicationPending,
			Note:              note,
			ApplicationDate:   r.now(),
		}
		r.patients[i].Applications = append(r.patients[i].Applications, created)
		return nil
	}, CollectionPatients)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Application submitted",
		zap.String("application_id", created.ID),
		zap.String("patient_id", patientID),
		zap.String("facility", facilityName),
	)
	details := fmt.Sprintf("Applied for patient %s (application: %s)", patientID, created.ID)
	recordAudit(ctx, s.auditRepo, s.logger, facilityName, "application_submit", details)

	return &created, nil
}

// ApproveApplication resolves a pending application as approved and marks its patient accepted.
// Approving another pending application of an already accepted patient is allowed.
func (s *ApplicationService) ApproveApplication(ctx context.Context, applicationID, responseNote string) (*models.ApplicationView, error) {
	return s.resolve(ctx, applicationID, responseNote, models.ApplicationApproved)
}

// RejectApplication resolves a pending application as rejected. Patient status and
// other pending applications are unaffected.
func (s *ApplicationService) RejectApplication(ctx context.Context, applicationID, responseNote string) (*models.ApplicationView, error) {
	return s.resolve(ctx, applicationID, responseNote, models.ApplicationRejected)
}

func (s *ApplicationService) resolve(ctx context.Context, applicationID, responseNote string, status models.ApplicationStatus) (*models.ApplicationView, error) {
	var view models.ApplicationView
	err := s.registry.mutate(ctx, func() error {
		r := s.registry
		i, j := r.applicationIndexLocked(applicationID)
		if i < 0 {
			return ErrApplicationNotFound
		}
		app := &r.patients[i].Applications[j]
		if app.IsResolved() {
			return ErrApplicationResolved
		}

		now := r.now()
		app.Status = status
		app.ResponseNote = responseNote
		app.ResponseDate = &now
		if status == models.ApplicationApproved {
			r.patients[i].Status = models.PatientAccepted
		}

		view = models.ApplicationView{
			Application: app.Clone(),
			Patient:     r.patients[i].Clone(),
		}
		return nil
	}, CollectionPatients)
	if err != nil {
		return nil, err
	}

	action := "application_approve"
	if status == models.ApplicationRejected {
		action = "application_reject"
	}
	s.logger.Info("Application resolved",
		zap.String("application_id", applicationID),
		zap.String("patient_id", view.PatientID),
		zap.String("status", string(status)),
	)
	details := fmt.Sprintf("%s application %s from %s for patient %s",
		status, applicationID, view.ApplicantFacility, view.PatientID)
	recordAudit(ctx, s.auditRepo, s.logger, view.Patient.Facility, action, details)

	return &view, nil
}

// GetApplication returns an application with its patient
func (s *ApplicationService) GetApplication(applicationID string) (*models.ApplicationView, error) {
	var (
		view  models.ApplicationView
		found bool
	)
	s.registry.read(func() {
		i, j := s.registry.applicationIndexLocked(applicationID)
		if i < 0 {
			return
		}
		found = true
		view = models.ApplicationView{
			Application: s.registry.patients[i].Applications[j].Clone(),
			Patient:     s.registry.patients[i].Clone(),
		}
	})
	if !found {
		return nil, ErrApplicationNotFound
	}
	return &view, nil
}

// ReceivedApplications returns every application for patients registered by facilityName, newest first
func (s *ApplicationService) ReceivedApplications(facilityName string) []models.ApplicationView {
	views := []models.ApplicationView{}
	s.registry.read(func() {
		for _, p := range s.registry.patients {
			if p.Facility != facilityName {
				continue
			}
			for _, app := range p.Applications {
				views = append(views, models.ApplicationView{Application: app.Clone(), Patient: p.Clone()})
			}
		}
	})
	sortNewestFirst(views)
	return views
}

// SentApplications returns every application submitted by facilityName, newest first
func (s *ApplicationService) SentApplications(facilityName string) []models.ApplicationView {
	views := []models.ApplicationView{}
	s.registry.read(func() {
		for _, p := range s.registry.patients {
			for _, app := range p.Applications {
				if app.ApplicantFacility != facilityName {
					continue
				}
				views = append(views, models.ApplicationView{Application: app.Clone(), Patient: p.Clone()})
			}
		}
	})
	sortNewestFirst(views)
	return views
}

func sortNewestFirst(views []models.ApplicationView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ApplicationDate.After(views[j].ApplicationDate)
	})
}

