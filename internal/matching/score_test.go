package matching

import (
	"testing"

	"heart-matching-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func patient(area, service string, days, slots []string) models.Patient {
	return models.Patient{
		ID:                 "HF-ABC123",
		Area:               area,
		DesiredService:     service,
		PreferredDays:      days,
		PreferredTimeSlots: slots,
		Status:             models.PatientAvailable,
	}
}

func facility(name, area string, services, days, slots []string, maxPatients, current int) models.Facility {
	return models.Facility{
		ID:                 "FAC-" + name,
		Name:               name,
		Area:               area,
		ProvidedServices:   services,
		AvailableDays:      days,
		AvailableTimeSlots: slots,
		MaxPatients:        maxPatients,
		CurrentPatients:    current,
	}
}

func TestScore_NoMatchNoPreferences(t *testing.T) {
	p := patient("X", "訪問看護", nil, nil)
	f := facility("A", "Y", []string{"訪問診療"}, []string{"月"}, []string{"9:00-12:00"}, 10, 0)

	assert.Equal(t, 0, Score(p, f))
}

func TestScore_AreaAndServiceWithoutPreferences(t *testing.T) {
	p := patient("X", "訪問看護", nil, nil)
	f := facility("A", "X", []string{"訪問看護"}, []string{"月", "火"}, []string{"9:00-12:00"}, 10, 5)

	assert.Equal(t, 70, Score(p, f))
}

func TestScore_FullMatch(t *testing.T) {
	p := patient("X", "訪問診療", []string{"月", "水"}, []string{"9:00-12:00"})
	f := facility("A", "X", []string{"訪問診療"}, []string{"月", "水", "金"}, []string{"9:00-12:00", "13:00-17:00"}, 10, 0)

	assert.Equal(t, 100, Score(p, f))
}

func TestScore_PartialOverlap(t *testing.T) {
	tests := []struct {
		name  string
		days  []string
		slots []string
		want  int
	}{
		// 30 + 40 + 15*(1/3) + 15*(1/2) = 82.5
		{"one of three days, one of two slots", []string{"月", "水", "金"}, []string{"9:00-12:00", "18:00-21:00"}, 83},
		// 30 + 40 + 15*(2/3) + 0 = 80
		{"two of three days, no slots", []string{"月", "火", "水"}, []string{"18:00-21:00"}, 80},
		// 30 + 40 + 0 + 15 = 85
		{"no day overlap, all slots", []string{"日"}, []string{"9:00-12:00"}, 85},
	}

	f := facility("A", "X", []string{"訪問診療"}, []string{"月", "火"}, []string{"9:00-12:00"}, 10, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := patient("X", "訪問診療", tt.days, tt.slots)
			assert.Equal(t, tt.want, Score(p, f))
		})
	}
}

func TestScore_PreferencesOnlyElsewhere(t *testing.T) {
	// area and service miss, all preferences overlap: 15 + 15
	p := patient("X", "訪問看護", []string{"月"}, []string{"9:00-12:00"})
	f := facility("A", "Y", []string{"訪問診療"}, []string{"月"}, []string{"9:00-12:00"}, 10, 0)

	assert.Equal(t, 30, Score(p, f))
}

func TestScore_BoundedAndDeterministic(t *testing.T) {
	days := [][]string{nil, {"月"}, {"月", "火", "水"}, {"土", "日"}}
	slots := [][]string{nil, {"9:00-12:00"}, {"13:00-17:00", "18:00-21:00"}}
	f := facility("A", "X", []string{"訪問看護", "訪問診療"}, []string{"月", "火"}, []string{"9:00-12:00"}, 3, 1)

	for _, area := range []string{"X", "Y"} {
		for _, service := range []string{"訪問看護", "居宅介護支援"} {
			for _, d := range days {
				for _, s := range slots {
					p := patient(area, service, d, s)
					first := Score(p, f)
					assert.GreaterOrEqual(t, first, 0)
					assert.LessOrEqual(t, first, 100)
					assert.Equal(t, first, Score(p, f))
				}
			}
		}
	}
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, LabelHigh, LabelFor(100))
	assert.Equal(t, LabelHigh, LabelFor(80))
	assert.Equal(t, LabelMedium, LabelFor(79))
	assert.Equal(t, LabelMedium, LabelFor(60))
	assert.Equal(t, LabelLow, LabelFor(59))
	assert.Equal(t, LabelLow, LabelFor(0))
}
