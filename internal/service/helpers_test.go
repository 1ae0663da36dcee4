package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store unavailable")

// flakyStore fails every save while down is set
type flakyStore struct {
	*repository.MemoryStore
	down  atomic.Bool
	saves atomic.Int32
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: repository.NewMemoryStore()}
}

func (s *flakyStore) SavePatients(ctx context.Context, patients []models.Patient) error {
	s.saves.Add(1)
	if s.down.Load() {
		return errStoreDown
	}
	return s.MemoryStore.SavePatients(ctx, patients)
}

func (s *flakyStore) SaveFacilities(ctx context.Context, facilities []models.Facility) error {
	s.saves.Add(1)
	if s.down.Load() {
		return errStoreDown
	}
	return s.MemoryStore.SaveFacilities(ctx, facilities)
}

func (s *flakyStore) SaveMessages(ctx context.Context, messages map[string][]models.ChatMessage) error {
	s.saves.Add(1)
	if s.down.Load() {
		return errStoreDown
	}
	return s.MemoryStore.SaveMessages(ctx, messages)
}

func (s *flakyStore) SaveNegotiations(ctx context.Context, negotiations map[string]models.Negotiation) error {
	s.saves.Add(1)
	if s.down.Load() {
		return errStoreDown
	}
	return s.MemoryStore.SaveNegotiations(ctx, negotiations)
}

type auditEntry struct {
	Actor, Action, Details string
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *recordingAudit) CreateAuditLog(_ context.Context, actor, action, details string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, auditEntry{Actor: actor, Action: action, Details: details})
	return nil
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Action
	}
	return out
}

var baseTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// steppingClock returns baseTime and advances one minute per call
func steppingClock() func() time.Time {
	var mu sync.Mutex
	next := baseTime
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func sequence(format string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf(format, n.Add(1))
	}
}

type testEnv struct {
	registry     *Registry
	audit        *recordingAudit
	patients     *PatientService
	applications *ApplicationService
	facilities   *FacilityService
	matching     *MatchingService
	chat         *ChatService
	auth         *AuthService
}

func newTestEnv(t *testing.T, store repository.Store) *testEnv {
	t.Helper()
	if store == nil {
		store = repository.NewMemoryStore()
	}
	logger := zap.NewNop()
	registry := NewRegistry(store, logger,
		WithClock(steppingClock()),
		WithIDGenerators(sequence("HF-%06d"), sequence("APP-%08d"), sequence("id-%d")),
	)
	audit := &recordingAudit{}
	facilities := NewFacilityService(registry, audit, logger)
	return &testEnv{
		registry:     registry,
		audit:        audit,
		patients:     NewPatientService(registry, logger),
		applications: NewApplicationService(registry, audit, logger),
		facilities:   facilities,
		matching:     NewMatchingService(registry),
		chat:         NewChatService(registry, logger),
		auth:         NewAuthService(facilities, audit, logger),
	}
}

func validPatientInput() models.PatientInput {
	return models.PatientInput{
		AgeGroup:           "70代",
		Gender:             "男性",
		Diagnosis:          "慢性心不全",
		NYHAClass:          "Ⅱ",
		MedicalTreatment:   "利尿薬内服",
		CareLevel:          "要介護1",
		Area:               "墨田区押上エリア",
		DesiredService:     "訪問看護",
		PreferredDays:      []string{"月", "木"},
		PreferredTimeSlots: []string{"9:00-12:00"},
		Frequency:          "週2回",
		ContactPhone:       "03-0000-0000",
		ContactEmail:       "ward@example.jp",
	}
}

func validFacilityInput(name string) models.FacilityInput {
	return models.FacilityInput{
		Name:               name,
		FacilityType:       "訪問看護ステーション",
		Area:               "墨田区押上エリア",
		Address:            "東京都墨田区押上1-1-1",
		Phone:              "03-1111-1111",
		Email:              "info@example.jp",
		AvailableDays:      []string{"月", "火", "水", "木", "金"},
		AvailableTimeSlots: []string{"9:00-12:00", "13:00-17:00"},
		ProvidedServices:   []string{"訪問看護"},
		MaxPatients:        10,
	}
}

func (e *testEnv) registerPatient(t *testing.T, facilityName string) models.Patient {
	t.Helper()
	result := e.patients.RegisterPatient(context.Background(), validPatientInput(), facilityName)
	require.True(t, result.Success)
	require.NotNil(t, result.Patient)
	return *result.Patient
}

func (e *testEnv) registerFacility(t *testing.T, input models.FacilityInput) models.Facility {
	t.Helper()
	f, err := e.facilities.RegisterFacility(context.Background(), input)
	require.NoError(t, err)
	return *f
}
