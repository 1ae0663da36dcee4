// Package matching ranks compatibility between patients and care facilities.
package matching

import (
	"math"
	"slices"

	"heart-matching-backend/internal/models"
)

// Criterion weights. All four are always counted toward the total, so a
// patient without day or time preferences cannot score above 70.
const (
	AreaWeight     = 30
	ServiceWeight  = 40
	DayWeight      = 15
	TimeSlotWeight = 15

	totalWeight = AreaWeight + ServiceWeight + DayWeight + TimeSlotWeight
)

// Score computes the compatibility of a patient with a facility on a 0-100 scale
func Score(p models.Patient, f models.Facility) int {
	achieved := 0.0

	if f.Area == p.Area {
		achieved += AreaWeight
	}
	if slices.Contains(f.ProvidedServices, p.DesiredService) {
		achieved += ServiceWeight
	}
	achieved += overlapPoints(DayWeight, p.PreferredDays, f.AvailableDays)
	achieved += overlapPoints(TimeSlotWeight, p.PreferredTimeSlots, f.AvailableTimeSlots)

	return int(math.Round(achieved * 100 / totalWeight))
}

// overlapPoints awards weight in proportion to the share of wanted entries present in offered.
// An empty wanted set earns nothing.
func overlapPoints(weight int, wanted, offered []string) float64 {
	if len(wanted) == 0 {
		return 0
	}
	return float64(weight*len(intersect(wanted, offered))) / float64(len(wanted))
}

// intersect keeps the entries of wanted that appear in offered, in wanted's order
func intersect(wanted, offered []string) []string {
	var common []string
	for _, w := range wanted {
		if slices.Contains(offered, w) {
			common = append(common, w)
		}
	}
	return common
}

// Label buckets a score into high, medium or low fit
type Label string

const (
	LabelHigh   Label = "high"
	LabelMedium Label = "medium"
	LabelLow    Label = "low"
)

// LabelFor returns the fit label shown next to a score
func LabelFor(score int) Label {
	switch {
	case score >= 80:
		return LabelHigh
	case score >= 60:
		return LabelMedium
	default:
		return LabelLow
	}
}
