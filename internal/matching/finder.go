package matching

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"heart-matching-backend/internal/models"
)

// Eligible applies the strict candidate gate: same area, desired service offered,
// at least one overlapping day and time slot when the patient has preferences,
// and spare capacity.
func Eligible(p models.Patient, f models.Facility) bool {
	if f.Area != p.Area {
		return false
	}
	if !slices.Contains(f.ProvidedServices, p.DesiredService) {
		return false
	}
	if len(p.PreferredDays) > 0 && len(intersect(p.PreferredDays, f.AvailableDays)) == 0 {
		return false
	}
	if len(p.PreferredTimeSlots) > 0 && len(intersect(p.PreferredTimeSlots, f.AvailableTimeSlots)) == 0 {
		return false
	}
	return f.CurrentPatients < f.MaxPatients
}

// FindMatchingFacilities returns the facilities passing the strict gate, in input order
func FindMatchingFacilities(p models.Patient, facilities []models.Facility) []models.Facility {
	matched := make([]models.Facility, 0)
	for _, f := range facilities {
		if Eligible(p, f) {
			matched = append(matched, f)
		}
	}
	return matched
}

// Reasons explains which criteria a facility satisfies for a patient.
// Informational only; ranking never reads it.
func Reasons(p models.Patient, f models.Facility) []string {
	reasons := make([]string, 0, 5)

	if f.Area == p.Area {
		reasons = append(reasons, "エリアが一致")
	}
	if slices.Contains(f.ProvidedServices, p.DesiredService) {
		reasons = append(reasons, "希望サービスを提供")
	}
	if days := intersect(p.PreferredDays, f.AvailableDays); len(days) > 0 {
		reasons = append(reasons, "対応可能曜日: "+strings.Join(days, ", "))
	}
	if slots := intersect(p.PreferredTimeSlots, f.AvailableTimeSlots); len(slots) > 0 {
		reasons = append(reasons, "対応可能時間: "+strings.Join(slots, ", "))
	}
	if remaining := f.RemainingCapacity(); remaining > 0 {
		reasons = append(reasons, fmt.Sprintf("受入可能: %d名", remaining))
	}

	return reasons
}

// FacilityMatch is a scored facility candidate for one patient
type FacilityMatch struct {
	Facility models.Facility `json:"facility"`
	Score    int             `json:"score"`
	Label    Label           `json:"label"`
	Reasons  []string        `json:"reasons"`
}

// PatientMatch is a scored patient candidate for one facility
type PatientMatch struct {
	Patient models.Patient `json:"patient"`
	Score   int            `json:"score"`
	Label   Label          `json:"label"`
	Reasons []string       `json:"reasons"`
}

// RankFacilities scores the strictly eligible facilities and sorts them by descending score.
// Equal scores keep their input order.
func RankFacilities(p models.Patient, facilities []models.Facility) []FacilityMatch {
	return scoreFacilities(p, FindMatchingFacilities(p, facilities), false)
}

// RankFacilitiesLoose scores every facility and keeps those with a nonzero score.
// Used by dashboard views, which intentionally skip the strict gate.
func RankFacilitiesLoose(p models.Patient, facilities []models.Facility) []FacilityMatch {
	return scoreFacilities(p, facilities, true)
}

func scoreFacilities(p models.Patient, facilities []models.Facility, dropZero bool) []FacilityMatch {
	results := make([]FacilityMatch, 0, len(facilities))
	for _, f := range facilities {
		score := Score(p, f)
		if dropZero && score == 0 {
			continue
		}
		results = append(results, FacilityMatch{
			Facility: f,
			Score:    score,
			Label:    LabelFor(score),
			Reasons:  Reasons(p, f),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// RankPatientsLoose scores every patient against a facility and keeps those with a nonzero score
func RankPatientsLoose(f models.Facility, patients []models.Patient) []PatientMatch {
	results := make([]PatientMatch, 0, len(patients))
	for _, p := range patients {
		score := Score(p, f)
		if score == 0 {
			continue
		}
		results = append(results, PatientMatch{
			Patient: p,
			Score:   score,
			Label:   LabelFor(score),
			Reasons: Reasons(p, f),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Summary aggregates a ranked result list
type Summary struct {
	Total        int `json:"total"`
	HighCount    int `json:"high_count"`
	MediumCount  int `json:"medium_count"`
	AverageScore int `json:"average_score"`
}

// Summarize counts high and medium fits and computes the rounded average score
func Summarize(matches []FacilityMatch) Summary {
	s := Summary{Total: len(matches)}
	if len(matches) == 0 {
		return s
	}
	sum := 0
	for _, m := range matches {
		sum += m.Score
		switch m.Label {
		case LabelHigh:
			s.HighCount++
		case LabelMedium:
			s.MediumCount++
		}
	}
	s.AverageScore = int(math.Round(float64(sum) / float64(len(matches))))
	return s
}
