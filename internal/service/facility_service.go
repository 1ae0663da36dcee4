package service

import (
	"context"
	"fmt"
	"strings"

	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/repository"

	"go.uber.org/zap"
)

type FacilityService struct {
	registry  *Registry
	auditRepo repository.AuditRecorder
	logger    *zap.Logger
}

func NewFacilityService(registry *Registry, auditRepo repository.AuditRecorder, logger *zap.Logger) *FacilityService {
	return &FacilityService{
		registry:  registry,
		auditRepo: auditRepo,
		logger:    logger.Named("facilities"),
	}
}

// ValidateFacilityInput checks the registration form fields
func ValidateFacilityInput(input models.FacilityInput) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = "施設名は必須です"
	}
	if input.FacilityType == "" {
		errs["facility_type"] = "施設タイプは必須です"
	}
	if input.Area == "" {
		errs["area"] = "エリアは必須です"
	}
	if strings.TrimSpace(input.Address) == "" {
		errs["address"] = "住所は必須です"
	}
	if strings.TrimSpace(input.Phone) == "" {
		errs["phone"] = "電話番号は必須です"
	}
	if strings.TrimSpace(input.Email) == "" {
		errs["email"] = "メールアドレスは必須です"
	}
	if len(toSet(input.AvailableDays)) == 0 {
		errs["available_days"] = "対応可能曜日を選択してください"
	}
	if len(toSet(input.AvailableTimeSlots)) == 0 {
		errs["available_time_slots"] = "対応可能時間帯を選択してください"
	}
	if len(toSet(input.ProvidedServices)) == 0 {
		errs["provided_services"] = "提供サービスを選択してください"
	}
	if input.MaxPatients <= 0 {
		errs["max_patients"] = "受入可能患者数は1以上で入力してください"
	}
	return errs
}

// RegisterFacility validates and adds a facility. The name must be unique and current patients starts at zero.
func (s *FacilityService) RegisterFacility(ctx context.Context, input models.FacilityInput) (*models.Facility, error) {
	input.Name = strings.TrimSpace(input.Name)
	if errs := ValidateFacilityInput(input); len(errs) > 0 {
		return nil, errs
	}

	var created models.Facility
	err := s.registry.mutate(ctx, func() error {
		r := s.registry
		if _, taken := r.facilityByNameLocked(input.Name); taken {
			return ErrFacilityNameTaken
		}
		created = applyFacilityInput(models.Facility{
			ID:               r.newID(),
			Name:             input.Name,
			RegistrationDate: r.now(),
		}, input)
		created.CurrentPatients = 0
		r.facilities = append(r.facilities, created)
		return nil
	}, CollectionFacilities)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Facility registered", zap.String("facility_id", created.ID), zap.String("name", created.Name))
	recordAudit(ctx, s.auditRepo, s.logger, created.Name, "facility_create", fmt.Sprintf("Registered facility: %s (ID: %s)", created.Name, created.ID))

	f := created.Clone()
	return &f, nil
}

// UpdateFacility replaces the editable fields of a facility. The name cannot change.
func (s *FacilityService) UpdateFacility(ctx context.Context, id string, input models.FacilityInput) (*models.Facility, error) {
	var updated models.Facility
	err := s.registry.mutate(ctx, func() error {
		r := s.registry
		i := r.facilityIndexLocked(id)
		if i < 0 {
			return ErrFacilityNotFound
		}
		existing := r.facilities[i]

		input.Name = existing.Name
		errs := ValidateFacilityInput(input)
		if input.CurrentPatients < 0 || input.CurrentPatients > input.MaxPatients {
			errs["current_patients"] = "現在の患者数は0以上かつ受入可能患者数以下で入力してください"
		}
		if len(errs) > 0 {
			return errs
		}

		updated = applyFacilityInput(existing, input)
		r.facilities[i] = updated
		return nil
	}, CollectionFacilities)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Facility updated", zap.String("facility_id", id))
	recordAudit(ctx, s.auditRepo, s.logger, updated.Name, "facility_update", fmt.Sprintf("Updated facility: %s (ID: %s)", updated.Name, id))

	f := updated.Clone()
	return &f, nil
}

// DeleteFacility removes a facility. Patients and applications referring to it by name are kept.
func (s *FacilityService) DeleteFacility(ctx context.Context, id string) error {
	var deleted models.Facility
	err := s.registry.mutate(ctx, func() error {
		r := s.registry
		i := r.facilityIndexLocked(id)
		if i < 0 {
			return ErrFacilityNotFound
		}
		deleted = r.facilities[i]
		r.facilities = append(r.facilities[:i:i], r.facilities[i+1:]...)
		return nil
	}, CollectionFacilities)
	if err != nil {
		return err
	}

	s.logger.Info("Facility deleted", zap.String("facility_id", id))
	recordAudit(ctx, s.auditRepo, s.logger, deleted.Name, "facility_delete", fmt.Sprintf("Deleted facility: %s (ID: %s)", deleted.Name, id))
	return nil
}

func (s *FacilityService) GetFacilityByID(id string) (*models.Facility, error) {
	var (
		f     models.Facility
		found bool
	)
	s.registry.read(func() {
		if i := s.registry.facilityIndexLocked(id); i >= 0 {
			f = s.registry.facilities[i].Clone()
			found = true
		}
	})
	if !found {
		return nil, ErrFacilityNotFound
	}
	return &f, nil
}

func (s *FacilityService) GetFacilityByName(name string) (*models.Facility, error) {
	var (
		f     models.Facility
		found bool
	)
	s.registry.read(func() {
		f, found = s.registry.facilityByNameLocked(name)
		f = f.Clone()
	})
	if !found {
		return nil, ErrFacilityNotFound
	}
	return &f, nil
}

// FacilitiesByArea returns facilities located in area
func (s *FacilityService) FacilitiesByArea(area string) []models.Facility {
	return s.collect(func(f models.Facility) bool { return f.Area == area })
}

// FacilitiesByService returns facilities offering service
func (s *FacilityService) FacilitiesByService(service string) []models.Facility {
	return s.collect(func(f models.Facility) bool { return contains(f.ProvidedServices, service) })
}

// ListFacilities applies the search, type and area filters. Search matches name or address, ignoring case.
func (s *FacilityService) ListFacilities(filter models.FacilityFilter) []models.Facility {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	return s.collect(func(f models.Facility) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(f.Name), search) &&
			!strings.Contains(strings.ToLower(f.Address), search) {
			return false
		}
		if filter.FacilityType != "" && f.FacilityType != filter.FacilityType {
			return false
		}
		if filter.Area != "" && f.Area != filter.Area {
			return false
		}
		return true
	})
}

func (s *FacilityService) collect(keep func(models.Facility) bool) []models.Facility {
	out := []models.Facility{}
	s.registry.read(func() {
		for _, f := range s.registry.facilities {
			if keep(f) {
				out = append(out, f.Clone())
			}
		}
	})
	return out
}

func applyFacilityInput(f models.Facility, input models.FacilityInput) models.Facility {
	f.FacilityType = input.FacilityType
	f.Area = input.Area
	f.Address = strings.TrimSpace(input.Address)
	f.Phone = strings.TrimSpace(input.Phone)
	f.Email = strings.TrimSpace(input.Email)
	f.AvailableDays = toSet(input.AvailableDays)
	f.AvailableTimeSlots = toSet(input.AvailableTimeSlots)
	f.ProvidedServices = toSet(input.ProvidedServices)
	f.Specialties = toSet(input.Specialties)
	f.Features = toSet(input.Features)
	f.MaxPatients = input.MaxPatients
	f.CurrentPatients = input.CurrentPatients
	f.Description = input.Description
	return f
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
