package service

import (
	"heart-matching-backend/internal/matching"
	"heart-matching-backend/internal/models"
)

type MatchingService struct {
	registry *Registry
}

func NewMatchingService(registry *Registry) *MatchingService {
	return &MatchingService{registry: registry}
}

// PatientMatches is the ranked facility list for one patient
type PatientMatches struct {
	Patient models.Patient           `json:"patient"`
	Matches []matching.FacilityMatch `json:"matches"`
	Summary matching.Summary         `json:"summary"`
}

// CalculateMatchScore scores one patient against one facility
func (s *MatchingService) CalculateMatchScore(p models.Patient, f models.Facility) int {
	return matching.Score(p, f)
}

// FindMatchingFacilities returns the facilities passing the strict eligibility gate, unranked
func (s *MatchingService) FindMatchingFacilities(p models.Patient) []models.Facility {
	var out []models.Facility
	s.registry.read(func() {
		out = matching.FindMatchingFacilities(p, s.registry.facilities)
		for i := range out {
			out[i] = out[i].Clone()
		}
	})
	return out
}

// MatchesForPatient ranks the strictly eligible facilities for a registered patient
func (s *MatchingService) MatchesForPatient(patientID string) (*PatientMatches, error) {
	var (
		result PatientMatches
		found  bool
	)
	s.registry.read(func() {
		i := s.registry.patientIndexLocked(patientID)
		if i < 0 {
			return
		}
		found = true
		result.Patient = s.registry.patients[i].Clone()
		result.Matches = cloneFacilityMatches(matching.RankFacilities(result.Patient, s.registry.facilities))
	})
	if !found {
		return nil, ErrPatientNotFound
	}
	result.Summary = matching.Summarize(result.Matches)
	return &result, nil
}

// FacilitiesForMyPatients ranks, for each patient registered by caller, every other
// facility with a nonzero score. The strict gate is not applied here.
func (s *MatchingService) FacilitiesForMyPatients(caller string) []PatientMatches {
	out := []PatientMatches{}
	s.registry.read(func() {
		others := make([]models.Facility, 0, len(s.registry.facilities))
		for _, f := range s.registry.facilities {
			if f.Name != caller {
				others = append(others, f)
			}
		}
		for _, p := range s.registry.patients {
			if p.Facility != caller {
				continue
			}
			matches := cloneFacilityMatches(matching.RankFacilitiesLoose(p, others))
			out = append(out, PatientMatches{
				Patient: p.Clone(),
				Matches: matches,
				Summary: matching.Summarize(matches),
			})
		}
	})
	return out
}

// PatientsForMyFacility ranks the patients registered by other facilities against
// the caller's own facility, keeping nonzero scores
func (s *MatchingService) PatientsForMyFacility(caller string) ([]matching.PatientMatch, error) {
	var (
		out   []matching.PatientMatch
		found bool
	)
	s.registry.read(func() {
		f, ok := s.registry.facilityByNameLocked(caller)
		if !ok {
			return
		}
		found = true
		others := make([]models.Patient, 0, len(s.registry.patients))
		for _, p := range s.registry.patients {
			if p.Facility != caller {
				others = append(others, p)
			}
		}
		out = matching.RankPatientsLoose(f, others)
		for i := range out {
			out[i].Patient = out[i].Patient.Clone()
		}
	})
	if !found {
		return nil, ErrFacilityNotFound
	}
	return out, nil
}

func cloneFacilityMatches(matches []matching.FacilityMatch) []matching.FacilityMatch {
	for i := range matches {
		matches[i].Facility = matches[i].Facility.Clone()
	}
	return matches
}
