package service

import (
	"context"
	"testing"

	"heart-matching-backend/internal/matching"
	"heart-matching-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesForPatient_NoPreferenceScenario(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	f := validFacilityInput("Xケアステーション")
	f.Area = "X"
	f.MaxPatients = 10
	facility := env.registerFacility(t, f)
	_, err := env.facilities.UpdateFacility(ctx, facility.ID, withCurrent(f, 5))
	require.NoError(t, err)

	input := validPatientInput()
	input.Area = "X"
	input.PreferredDays = nil
	input.PreferredTimeSlots = nil
	result := env.patients.RegisterPatient(ctx, input, "FacA")
	require.True(t, result.Success)

	matches, err := env.matching.MatchesForPatient(result.Patient.ID)
	require.NoError(t, err)
	require.Len(t, matches.Matches, 1)
	assert.Equal(t, 70, matches.Matches[0].Score)
	assert.Equal(t, matching.LabelMedium, matches.Matches[0].Label)
	assert.Equal(t, 1, matches.Summary.Total)
	assert.Equal(t, 70, matches.Summary.AverageScore)

	found := env.matching.FindMatchingFacilities(*result.Patient)
	require.Len(t, found, 1)
	assert.Equal(t, 70, env.matching.CalculateMatchScore(*result.Patient, found[0]))

	_, err = env.matching.MatchesForPatient("HF-NOPE00")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestFacilitiesForMyPatients_LooseAndExcludesSelf(t *testing.T) {
	env := newTestEnv(t, nil)

	env.registerFacility(t, validFacilityInput("FacA"))
	full := validFacilityInput("FacFull")
	env.registerFacility(t, full)
	elsewhere := validFacilityInput("FacElsewhere")
	elsewhere.Area = "江東区豊洲エリア"
	elsewhere.ProvidedServices = []string{"訪問診療"}
	elsewhere.AvailableDays = []string{"土"}
	elsewhere.AvailableTimeSlots = []string{"18:00-21:00"}
	env.registerFacility(t, elsewhere)

	// FacFull is eligible on paper but at capacity; the loose view still lists it
	f, err := env.facilities.GetFacilityByName("FacFull")
	require.NoError(t, err)
	_, err = env.facilities.UpdateFacility(context.Background(), f.ID, withCurrent(full, full.MaxPatients))
	require.NoError(t, err)

	p := env.registerPatient(t, "FacA")
	env.registerPatient(t, "FacB")

	views := env.matching.FacilitiesForMyPatients("FacA")
	require.Len(t, views, 1)
	assert.Equal(t, p.ID, views[0].Patient.ID)
	require.Len(t, views[0].Matches, 1)
	assert.Equal(t, "FacFull", views[0].Matches[0].Facility.Name)
	assert.Equal(t, 100, views[0].Matches[0].Score)

	strict, err := env.matching.MatchesForPatient(p.ID)
	require.NoError(t, err)
	names := []string{}
	for _, m := range strict.Matches {
		names = append(names, m.Facility.Name)
	}
	assert.Equal(t, []string{"FacA"}, names)
}

func TestPatientsForMyFacility(t *testing.T) {
	env := newTestEnv(t, nil)
	env.registerFacility(t, validFacilityInput("FacA"))

	own := env.registerPatient(t, "FacA")
	near := env.registerPatient(t, "FacB")
	farInput := validPatientInput()
	farInput.Area = "江戸川区葛西エリア"
	farInput.DesiredService = "居宅介護支援"
	farInput.PreferredDays = []string{"日"}
	farInput.PreferredTimeSlots = []string{"18:00-21:00"}
	require.True(t, env.patients.RegisterPatient(context.Background(), farInput, "FacB").Success)

	matches, err := env.matching.PatientsForMyFacility("FacA")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, near.ID, matches[0].Patient.ID)
	assert.NotEqual(t, own.ID, matches[0].Patient.ID)

	_, err = env.matching.PatientsForMyFacility("unknown")
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func withCurrent(input models.FacilityInput, current int) models.FacilityInput {
	input.CurrentPatients = current
	return input
}
