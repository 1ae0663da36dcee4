package service

import (
	"context"
	"strings"

	"heart-matching-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type PatientService struct {
	registry *Registry
	logger   *zap.Logger
}

func NewPatientService(registry *Registry, logger *zap.Logger) *PatientService {
	return &PatientService{
		registry: registry,
		logger:   logger.Named("patients"),
	}
}

// RegisterResult is the outcome of a registration attempt. Validation
// failures are an expected result, not an error.
type RegisterResult struct {
	Success bool             `json:"success"`
	Patient *models.Patient  `json:"patient,omitempty"`
	Errors  ValidationErrors `json:"errors,omitempty"`
}

// ValidatePatientInput checks the required registration fields
func ValidatePatientInput(input models.PatientInput) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(input.AgeGroup) == "" {
		errs["age_group"] = "年齢層は必須です"
	}
	if strings.TrimSpace(input.Gender) == "" {
		errs["gender"] = "性別は必須です"
	}
	if strings.TrimSpace(input.Diagnosis) == "" {
		errs["diagnosis"] = "診断名は必須です"
	}
	if strings.TrimSpace(input.NYHAClass) == "" {
		errs["nyha_class"] = "NYHA分類は必須です"
	}
	if strings.TrimSpace(input.Area) == "" {
		errs["area"] = "地域は必須です"
	}
	if strings.TrimSpace(input.DesiredService) == "" {
		errs["desired_service"] = "希望サービスは必須です"
	}
	return errs
}

// RegisterPatient validates the form fields and registers a new patient owned by facilityName.
// The patient starts available with no applications.
func (s *PatientService) RegisterPatient(ctx context.Context, input models.PatientInput, facilityName string) RegisterResult {
	if errs := ValidatePatientInput(input); len(errs) > 0 {
		return RegisterResult{Success: false, Errors: errs}
	}

	var created models.Patient
	err := s.registry.mutate(ctx, func() error {
		r := s.registry
		id, err := r.uniquePatientIDLocked()
		if err != nil {
			return err
		}
		created = models.Patient{
			ID:                 id,
			AgeGroup:           input.AgeGroup,
			Gender:             input.Gender,
			Diagnosis:          input.Diagnosis,
			NYHAClass:          input.NYHAClass,
			MedicalTreatment:   input.MedicalTreatment,
			CareLevel:          input.CareLevel,
			DesiredService:     input.DesiredService,
			PreferredDays:      toSet(input.PreferredDays),
			PreferredTimeSlots: toSet(input.PreferredTimeSlots),
			Frequency:          input.Frequency,
			Facility:           facilityName,
			Area:               input.Area,
			ContactPhone:       input.ContactPhone,
			ContactEmail:       input.ContactEmail,
			RegistrationDate:   r.now(),
			Status:             models.PatientAvailable,
			Applications:       []models.Application{},
		}
		r.patients = append(r.patients, created)
		return nil
	}, CollectionPatients)
	if err != nil {
		s.logger.Error("Failed to register patient", zap.String("facility", facilityName), zap.Error(err))
		return RegisterResult{Success: false, Errors: ValidationErrors{"id": "患者IDを採番できませんでした"}}
	}

	s.logger.Info("Patient registered",
		zap.String("patient_id", created.ID),
		zap.String("facility", facilityName),
	)

	p := created.Clone()
	return RegisterResult{Success: true, Patient: &p}
}

// ListPatients returns every patient matching the filter, in registration order
func (s *PatientService) ListPatients(filter models.PatientFilter) []models.Patient {
	var patients []models.Patient
	s.registry.read(func() {
		patients = FilterPatients(s.registry.patients, filter)
	})
	return clonePatients(patients)
}

// GetPatient returns a copy of one patient
func (s *PatientService) GetPatient(id string) (*models.Patient, error) {
	var (
		p     models.Patient
		found bool
	)
	s.registry.read(func() {
		if i := s.registry.patientIndexLocked(id); i >= 0 {
			p = s.registry.patients[i].Clone()
			found = true
		}
	})
	if !found {
		return nil, ErrPatientNotFound
	}
	return &p, nil
}

// PatientsByFacility returns the patients registered by facilityName
func (s *PatientService) PatientsByFacility(facilityName string) []models.Patient {
	var out []models.Patient
	s.registry.read(func() {
		for _, p := range s.registry.patients {
			if p.Facility == facilityName {
				out = append(out, p.Clone())
			}
		}
	})
	if out == nil {
		out = []models.Patient{}
	}
	return out
}

// FilterPatients applies AND-combined equality filters plus a substring match on desired service.
// Empty filter values do not constrain. The input slice is not modified.
func FilterPatients(patients []models.Patient, filter models.PatientFilter) []models.Patient {
	out := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if filter.AgeGroup != "" && p.AgeGroup != filter.AgeGroup {
			continue
		}
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		if filter.NYHAClass != "" && p.NYHAClass != filter.NYHAClass {
			continue
		}
		if filter.CareLevel != "" && p.CareLevel != filter.CareLevel {
			continue
		}
		if filter.Area != "" && p.Area != filter.Area {
			continue
		}
		if filter.Service != "" && !strings.Contains(p.DesiredService, filter.Service) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// WardStats counts patients in one ward
type WardStats struct {
	Ward      string `json:"ward"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
}

// PatientStats summarizes the registry for dashboards
type PatientStats struct {
	Total    int                          `json:"total"`
	ByStatus map[models.PatientStatus]int `json:"by_status"`
	ByWard   []WardStats                  `json:"by_ward"`
}

// Stats counts patients by status and by ward. Wards keep first-seen order.
func (s *PatientService) Stats() PatientStats {
	stats := PatientStats{
		ByStatus: map[models.PatientStatus]int{
			models.PatientAvailable: 0,
			models.PatientPending:   0,
			models.PatientAccepted:  0,
			models.PatientRejected:  0,
		},
		ByWard: []WardStats{},
	}

	s.registry.read(func() {
		wardIndex := map[string]int{}
		for _, p := range s.registry.patients {
			stats.Total++
			stats.ByStatus[p.Status]++

			ward := WardOf(p.Area)
			i, ok := wardIndex[ward]
			if !ok {
				i = len(stats.ByWard)
				wardIndex[ward] = i
				stats.ByWard = append(stats.ByWard, WardStats{Ward: ward})
			}
			stats.ByWard[i].Total++
			if p.Status == models.PatientAvailable {
				stats.ByWard[i].Available++
			}
		}
	})
	return stats
}

// WardOf returns the area prefix up to and including 区, or the whole area when it has none
func WardOf(area string) string {
	if i := strings.Index(area, "区"); i >= 0 {
		return area[:i+len("区")]
	}
	return area
}

// toSet drops blanks and duplicates while keeping first-seen order
func toSet(values []string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func clonePatients(patients []models.Patient) []models.Patient {
	out := make([]models.Patient, len(patients))
	for i, p := range patients {
		out[i] = p.Clone()
	}
	return out
}
