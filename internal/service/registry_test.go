package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistry_LoadNormalizesLegacyRecords(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.SavePatients(ctx, []models.Patient{{
		ID: "HF-OLD001",
		Applications: []models.Application{
			{ID: "APP-2", ApplicationDate: baseTime.Add(time.Hour)},
			{ID: "APP-1", ApplicationDate: baseTime},
		},
	}}))

	registry := NewRegistry(store, zap.NewNop())
	require.NoError(t, registry.Load(ctx))

	patients := NewPatientService(registry, zap.NewNop())
	p, err := patients.GetPatient("HF-OLD001")
	require.NoError(t, err)
	assert.Equal(t, models.PatientAvailable, p.Status)
	assert.Equal(t, "APP-1", p.Applications[0].ID)
	assert.False(t, registry.IsEmpty())
}

func TestRegistry_PersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	store := newFlakyStore()
	env := newTestEnv(t, store)
	ctx := context.Background()

	store.down.Store(true)
	p := env.registerPatient(t, "FacA")
	app, err := env.applications.SubmitApplication(ctx, p.ID, "FacB", "")
	require.NoError(t, err)

	assert.Equal(t, []Collection{CollectionPatients}, env.registry.Dirty())
	got, err := env.patients.GetPatient(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Applications, 1)
	assert.Equal(t, app.ID, got.Applications[0].ID)

	stored, err := store.LoadPatients(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)

	assert.Error(t, env.registry.Flush(ctx))
	assert.Equal(t, []Collection{CollectionPatients}, env.registry.Dirty())

	store.down.Store(false)
	require.NoError(t, env.registry.Flush(ctx))
	assert.Empty(t, env.registry.Dirty())

	stored, err = store.LoadPatients(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Applications, 1)
}

func TestRegistry_FailedMutationDoesNotPersist(t *testing.T) {
	store := newFlakyStore()
	env := newTestEnv(t, store)
	p := env.registerPatient(t, "FacA")
	before := store.saves.Load()

	_, err := env.applications.SubmitApplication(context.Background(), p.ID, "FacA", "")
	require.Error(t, err)
	assert.Equal(t, before, store.saves.Load())
}

func TestRegistry_ReplaceAndReload(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	registry := NewRegistry(store, zap.NewNop())
	assert.True(t, registry.IsEmpty())

	negotiations := map[string]models.Negotiation{
		"HF-ABC123": {ID: "n-1", PatientID: "HF-ABC123", Status: models.NegotiationConsulting},
	}
	err := registry.Replace(ctx,
		[]models.Patient{{ID: "HF-ABC123", Facility: "FacA"}},
		[]models.Facility{{ID: "f-1", Name: "FacA", MaxPatients: 1}},
		map[string][]models.ChatMessage{"HF-ABC123": {{ID: "m-1", PatientID: "HF-ABC123", SenderName: "FacB", Message: "hi"}}},
		negotiations,
	)
	require.NoError(t, err)

	reloaded := NewRegistry(store, zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	assert.False(t, reloaded.IsEmpty())

	chat := NewChatService(reloaded, zap.NewNop())
	assert.Len(t, chat.MessagesFor("HF-ABC123"), 1)
	n, ok := chat.Negotiation("HF-ABC123")
	require.True(t, ok)
	assert.Equal(t, models.NegotiationConsulting, n.Status)
}

func TestPersistenceWorker_RetriesDirtyCollections(t *testing.T) {
	store := newFlakyStore()
	env := newTestEnv(t, store)

	store.down.Store(true)
	env.registerFacility(t, validFacilityInput("FacA"))
	require.Equal(t, []Collection{CollectionFacilities}, env.registry.Dirty())
	store.down.Store(false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	worker := NewPersistenceWorker(env.registry, 10*time.Millisecond, zap.NewNop())
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return len(env.registry.Dirty()) == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	stored, err := store.LoadFacilities(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "FacA", stored[0].Name)
}

func TestPersistenceWorker_FlushesOnShutdown(t *testing.T) {
	store := newFlakyStore()
	env := newTestEnv(t, store)

	store.down.Store(true)
	env.registerPatient(t, "FacA")
	store.down.Store(false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewPersistenceWorker(env.registry, time.Hour, zap.NewNop()).Start(ctx)

	assert.Empty(t, env.registry.Dirty())
}

// replay returns the given IDs in order, then repeats the last one
func replay(ids ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[min(i, len(ids)-1)]
		i++
		return id
	}
}

func newReplayEnv(patientIDs, applicationIDs func() string) *testEnv {
	logger := zap.NewNop()
	registry := NewRegistry(repository.NewMemoryStore(), logger,
		WithClock(steppingClock()),
		WithIDGenerators(patientIDs, applicationIDs, sequence("id-%d")),
	)
	audit := &recordingAudit{}
	return &testEnv{
		registry:     registry,
		audit:        audit,
		patients:     NewPatientService(registry, logger),
		applications: NewApplicationService(registry, audit, logger),
	}
}

func TestRegisterPatient_RedrawsTakenID(t *testing.T) {
	env := newReplayEnv(replay("HF-AAAAAA", "HF-AAAAAA", "HF-BBBBBB"), nil)

	first := env.registerPatient(t, "FacA")
	second := env.registerPatient(t, "FacB")

	assert.Equal(t, "HF-AAAAAA", first.ID)
	assert.Equal(t, "HF-BBBBBB", second.ID)

	got, err := env.patients.GetPatient("HF-AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, "FacA", got.Facility)
	assert.Len(t, env.patients.ListPatients(models.PatientFilter{}), 2)
}

func TestRegisterPatient_GivesUpAfterBoundedRedraws(t *testing.T) {
	env := newReplayEnv(replay("HF-AAAAAA"), nil)
	env.registerPatient(t, "FacA")

	result := env.patients.RegisterPatient(context.Background(), validPatientInput(), "FacB")
	assert.False(t, result.Success)
	assert.Nil(t, result.Patient)
	assert.Contains(t, result.Errors, "id")
	assert.Len(t, env.patients.ListPatients(models.PatientFilter{}), 1)
}

func TestSubmitApplication_RedrawsTakenID(t *testing.T) {
	env := newReplayEnv(sequence("HF-%06d"), replay("APP-AAAAAAAA", "APP-AAAAAAAA", "APP-BBBBBBBB"))
	ctx := context.Background()
	p1 := env.registerPatient(t, "FacA")
	p2 := env.registerPatient(t, "FacA")

	a1, err := env.applications.SubmitApplication(ctx, p1.ID, "FacB", "")
	require.NoError(t, err)
	a2, err := env.applications.SubmitApplication(ctx, p2.ID, "FacB", "")
	require.NoError(t, err)

	assert.Equal(t, "APP-AAAAAAAA", a1.ID)
	assert.Equal(t, "APP-BBBBBBBB", a2.ID)
}

func TestSubmitApplication_GivesUpAfterBoundedRedraws(t *testing.T) {
	env := newReplayEnv(sequence("HF-%06d"), replay("APP-AAAAAAAA"))
	ctx := context.Background()
	p1 := env.registerPatient(t, "FacA")
	p2 := env.registerPatient(t, "FacA")

	_, err := env.applications.SubmitApplication(ctx, p1.ID, "FacB", "")
	require.NoError(t, err)
	_, err = env.applications.SubmitApplication(ctx, p2.ID, "FacB", "")
	require.ErrorIs(t, err, ErrIDExhausted)

	got, err := env.patients.GetPatient(p2.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Applications)
}
