package matching

import (
	"math"
	"testing"

	"heart-matching-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	base := facility("A", "X", []string{"訪問看護"}, []string{"月", "水"}, []string{"9:00-12:00"}, 10, 5)

	tests := []struct {
		name   string
		mutate func(p *models.Patient, f *models.Facility)
		want   bool
	}{
		{"matching", func(p *models.Patient, f *models.Facility) {}, true},
		{"different area", func(p *models.Patient, f *models.Facility) { f.Area = "Y" }, false},
		{"service not provided", func(p *models.Patient, f *models.Facility) { p.DesiredService = "訪問診療" }, false},
		{"no common day", func(p *models.Patient, f *models.Facility) { p.PreferredDays = []string{"日"} }, false},
		{"no common slot", func(p *models.Patient, f *models.Facility) { p.PreferredTimeSlots = []string{"18:00-21:00"} }, false},
		{"one common day is enough", func(p *models.Patient, f *models.Facility) { p.PreferredDays = []string{"日", "水"} }, true},
		{"full capacity", func(p *models.Patient, f *models.Facility) { f.CurrentPatients = 10 }, false},
		{"over capacity", func(p *models.Patient, f *models.Facility) { f.CurrentPatients = 11 }, false},
		{"no preferences", func(p *models.Patient, f *models.Facility) {
			p.PreferredDays = nil
			p.PreferredTimeSlots = nil
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := patient("X", "訪問看護", []string{"月"}, []string{"9:00-12:00"})
			f := base.Clone()
			tt.mutate(&p, &f)
			assert.Equal(t, tt.want, Eligible(p, f))
		})
	}
}

func TestFindMatchingFacilities_ScenarioNoPreferences(t *testing.T) {
	p := patient("X", "訪問看護", nil, nil)
	f := facility("A", "X", []string{"訪問看護"}, nil, nil, 10, 5)

	got := FindMatchingFacilities(p, []models.Facility{f})

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, 70, Score(p, got[0]))
}

func TestFindMatchingFacilities_NeverReturnsFullFacilities(t *testing.T) {
	p := patient("X", "訪問看護", nil, nil)
	facilities := []models.Facility{
		facility("full", "X", []string{"訪問看護"}, nil, nil, 3, 3),
		facility("open", "X", []string{"訪問看護"}, nil, nil, 3, 2),
		facility("over", "X", []string{"訪問看護"}, nil, nil, 1, 4),
	}

	got := FindMatchingFacilities(p, facilities)

	require.Len(t, got, 1)
	assert.Equal(t, "open", got[0].Name)
	for _, f := range got {
		assert.Less(t, f.CurrentPatients, f.MaxPatients)
	}
}

func TestRankFacilities_SortsDescendingWithStableTies(t *testing.T) {
	p := patient("X", "訪問看護", []string{"月", "火"}, []string{"9:00-12:00"})
	facilities := []models.Facility{
		facility("half-days-1", "X", []string{"訪問看護"}, []string{"月"}, []string{"9:00-12:00"}, 5, 0),
		facility("all", "X", []string{"訪問看護"}, []string{"月", "火"}, []string{"9:00-12:00"}, 5, 0),
		facility("half-days-2", "X", []string{"訪問看護"}, []string{"火"}, []string{"9:00-12:00"}, 5, 0),
		facility("elsewhere", "Y", []string{"訪問看護"}, []string{"月", "火"}, []string{"9:00-12:00"}, 5, 0),
	}

	ranked := RankFacilities(p, facilities)

	require.Len(t, ranked, 3)
	assert.Equal(t, "all", ranked[0].Facility.Name)
	assert.Equal(t, 100, ranked[0].Score)
	assert.Equal(t, "half-days-1", ranked[1].Facility.Name)
	assert.Equal(t, "half-days-2", ranked[2].Facility.Name)
	assert.Equal(t, ranked[1].Score, ranked[2].Score)
}

func TestRankFacilitiesLoose_KeepsNonzeroScores(t *testing.T) {
	p := patient("X", "訪問看護", nil, nil)
	facilities := []models.Facility{
		facility("nothing", "Y", []string{"訪問診療"}, nil, nil, 5, 0),
		facility("area-only", "X", []string{"訪問診療"}, nil, nil, 5, 5),
		facility("service-only", "Y", []string{"訪問看護"}, nil, nil, 5, 0),
	}

	ranked := RankFacilitiesLoose(p, facilities)

	require.Len(t, ranked, 2)
	assert.Equal(t, "service-only", ranked[0].Facility.Name)
	assert.Equal(t, 40, ranked[0].Score)
	// full facilities are not excluded by the loose rule
	assert.Equal(t, "area-only", ranked[1].Facility.Name)
	assert.Equal(t, 30, ranked[1].Score)
}

func TestRankPatientsLoose(t *testing.T) {
	f := facility("A", "X", []string{"訪問看護"}, []string{"月"}, []string{"9:00-12:00"}, 5, 0)
	patients := []models.Patient{
		patient("Y", "訪問診療", nil, nil),
		patient("X", "訪問看護", []string{"月"}, []string{"9:00-12:00"}),
		patient("X", "訪問診療", nil, nil),
	}

	ranked := RankPatientsLoose(f, patients)

	require.Len(t, ranked, 2)
	assert.Equal(t, 100, ranked[0].Score)
	assert.Equal(t, 30, ranked[1].Score)
}

func TestReasons(t *testing.T) {
	p := patient("X", "訪問看護", []string{"月", "水", "金"}, []string{"9:00-12:00", "18:00-21:00"})
	f := facility("A", "X", []string{"訪問看護"}, []string{"金", "月"}, []string{"9:00-12:00"}, 10, 7)

	assert.Equal(t, []string{
		"エリアが一致",
		"希望サービスを提供",
		"対応可能曜日: 月, 金",
		"対応可能時間: 9:00-12:00",
		"受入可能: 3名",
	}, Reasons(p, f))
}

func TestReasons_NothingMatches(t *testing.T) {
	p := patient("X", "訪問看護", nil, nil)
	f := facility("A", "Y", []string{"訪問診療"}, nil, nil, 2, 2)

	assert.Empty(t, Reasons(p, f))
}

func TestSummarize(t *testing.T) {
	matches := []FacilityMatch{
		{Score: 100, Label: LabelHigh},
		{Score: 70, Label: LabelMedium},
		{Score: 45, Label: LabelLow},
	}

	s := Summarize(matches)

	assert.Equal(t, Summary{Total: 3, HighCount: 1, MediumCount: 1, AverageScore: 72}, s)
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize_AverageRoundsHalfUp(t *testing.T) {
	s := Summarize([]FacilityMatch{
		{Score: 85, Label: LabelHigh},
		{Score: 60, Label: LabelMedium},
	})

	assert.Equal(t, 73, s.AverageScore)
	assert.Equal(t, int(math.Round(72.5)), s.AverageScore)
}
