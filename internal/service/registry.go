package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"heart-matching-backend/internal/models"
	"heart-matching-backend/internal/repository"
	"heart-matching-backend/pkg/utils"

	"go.uber.org/zap"
)

// Collection names a persisted record set
type Collection string

const (
	CollectionPatients     Collection = "patients"
	CollectionFacilities   Collection = "facilities"
	CollectionMessages     Collection = "messages"
	CollectionNegotiations Collection = "negotiations"
)

// maxIDAttempts bounds redraws when a generated display ID is already taken
const maxIDAttempts = 16

var allCollections = []Collection{CollectionPatients, CollectionFacilities, CollectionMessages, CollectionNegotiations}

// Registry owns the canonical in-memory collections. Every mutation is applied
// under the write lock and followed by a full write of the touched collection.
// A failed write is logged and the collection is marked dirty; memory stays
// authoritative and nothing is rolled back.
type Registry struct {
	mu     sync.RWMutex
	store  repository.Store
	logger *zap.Logger

	now              func() time.Time
	newPatientID     func() string
	newApplicationID func() string
	newID            func() string

	patients     []models.Patient
	facilities   []models.Facility
	messages     map[string][]models.ChatMessage
	negotiations map[string]models.Negotiation

	dirty map[Collection]bool
}

type RegistryOption func(*Registry)

// WithClock replaces time.Now
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerators replaces the patient, application and generic ID generators
func WithIDGenerators(patientID, applicationID, id func() string) RegistryOption {
	return func(r *Registry) {
		if patientID != nil {
			r.newPatientID = patientID
		}
		if applicationID != nil {
			r.newApplicationID = applicationID
		}
		if id != nil {
			r.newID = id
		}
	}
}

func NewRegistry(store repository.Store, logger *zap.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:            store,
		logger:           logger.Named("registry"),
		now:              time.Now,
		newPatientID:     utils.GeneratePatientID,
		newApplicationID: utils.GenerateApplicationID,
		newID:            utils.GenerateID,
		patients:         []models.Patient{},
		facilities:       []models.Facility{},
		messages:         map[string][]models.ChatMessage{},
		negotiations:     map[string]models.Negotiation{},
		dirty:            map[Collection]bool{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the in-memory state with the store's collections
func (r *Registry) Load(ctx context.Context) error {
	patients, err := r.store.LoadPatients(ctx)
	if err != nil {
		return err
	}
	facilities, err := r.store.LoadFacilities(ctx)
	if err != nil {
		return err
	}
	messages, err := r.store.LoadMessages(ctx)
	if err != nil {
		return err
	}
	negotiations, err := r.store.LoadNegotiations(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients = normalizePatients(patients)
	r.facilities = nonNilFacilities(facilities)
	r.messages = nonNilMessages(messages)
	r.negotiations = nonNilNegotiations(negotiations)
	r.dirty = map[Collection]bool{}

	r.logger.Info("Registry loaded",
		zap.Int("patients", len(r.patients)),
		zap.Int("facilities", len(r.facilities)),
		zap.Int("chats", len(r.messages)),
	)
	return nil
}

// Replace swaps in a complete dataset and persists every collection
func (r *Registry) Replace(ctx context.Context, patients []models.Patient, facilities []models.Facility,
	messages map[string][]models.ChatMessage, negotiations map[string]models.Negotiation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.patients = normalizePatients(repository.ClonePatients(patients))
	r.facilities = nonNilFacilities(repository.CloneFacilities(facilities))
	r.messages = nonNilMessages(repository.CloneMessages(messages))
	r.negotiations = nonNilNegotiations(repository.CloneNegotiations(negotiations))

	var errs []error
	for _, c := range allCollections {
		if err := r.persistLocked(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsEmpty reports whether no patients and no facilities are registered
func (r *Registry) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients) == 0 && len(r.facilities) == 0
}

// Dirty lists collections whose last write failed, in a fixed order
func (r *Registry) Dirty() []Collection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Collection
	for _, c := range allCollections {
		if r.dirty[c] {
			out = append(out, c)
		}
	}
	return out
}

// Flush rewrites every dirty collection. Collections that still fail stay dirty.
func (r *Registry) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, c := range allCollections {
		if !r.dirty[c] {
			continue
		}
		if err := r.persistLocked(ctx, c); err != nil {
			errs = append(errs, err)
			continue
		}
		r.logger.Info("Recovered persistence", zap.String("collection", string(c)))
	}
	return errors.Join(errs...)
}

// read runs fn under the read lock
func (r *Registry) read(fn func()) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn()
}

// mutate runs fn under the write lock and persists the named collections if fn succeeds.
// Persistence failures are not returned.
func (r *Registry) mutate(ctx context.Context, fn func() error, collections ...Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	for _, c := range collections {
		_ = r.persistLocked(ctx, c)
	}
	return nil
}

func (r *Registry) persistLocked(ctx context.Context, c Collection) error {
	var err error
	switch c {
	case CollectionPatients:
		err = r.store.SavePatients(ctx, repository.ClonePatients(r.patients))
	case CollectionFacilities:
		err = r.store.SaveFacilities(ctx, repository.CloneFacilities(r.facilities))
	case CollectionMessages:
		err = r.store.SaveMessages(ctx, repository.CloneMessages(r.messages))
	case CollectionNegotiations:
		err = r.store.SaveNegotiations(ctx, repository.CloneNegotiations(r.negotiations))
	default:
		return fmt.Errorf("unknown collection %q", c)
	}

	if err != nil {
		r.dirty[c] = true
		r.logger.Error("Failed to persist collection",
			zap.String("collection", string(c)),
			zap.Error(err),
		)
		return fmt.Errorf("persist %s: %w", c, err)
	}
	delete(r.dirty, c)
	return nil
}

// patientIndexLocked returns the slice index of a patient or -1
func (r *Registry) patientIndexLocked(id string) int {
	for i := range r.patients {
		if r.patients[i].ID == id {
			return i
		}
	}
	return -1
}

// applicationIndexLocked locates an application across every patient
func (r *Registry) applicationIndexLocked(id string) (int, int) {
	for i := range r.patients {
		for j := range r.patients[i].Applications {
			if r.patients[i].Applications[j].ID == id {
				return i, j
			}
		}
	}
	return -1, -1
}

// uniquePatientIDLocked draws patient IDs until one is not registered yet
func (r *Registry) uniquePatientIDLocked() (string, error) {
	return drawUnique(r.newPatientID, func(id string) bool {
		return r.patientIndexLocked(id) >= 0
	})
}

// uniqueApplicationIDLocked draws application IDs until one is unused across every patient
func (r *Registry) uniqueApplicationIDLocked() (string, error) {
	return drawUnique(r.newApplicationID, func(id string) bool {
		i, _ := r.applicationIndexLocked(id)
		return i >= 0
	})
}

func drawUnique(next func() string, taken func(string) bool) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		if id := next(); !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (r *Registry) facilityIndexLocked(id string) int {
	for i := range r.facilities {
		if r.facilities[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) facilityByNameLocked(name string) (models.Facility, bool) {
	for _, f := range r.facilities {
		if f.Name == name {
			return f, true
		}
	}
	return models.Facility{}, false
}

func normalizePatients(patients []models.Patient) []models.Patient {
	if patients == nil {
		return []models.Patient{}
	}
	for i := range patients {
		if patients[i].Status == "" {
			patients[i].Status = models.PatientAvailable
		}
		if patients[i].Applications == nil {
			patients[i].Applications = []models.Application{}
		}
		// submission order
		sort.SliceStable(patients[i].Applications, func(a, b int) bool {
			return patients[i].Applications[a].ApplicationDate.Before(patients[i].Applications[b].ApplicationDate)
		})
	}
	return patients
}

func nonNilFacilities(facilities []models.Facility) []models.Facility {
	if facilities == nil {
		return []models.Facility{}
	}
	return facilities
}

func nonNilMessages(messages map[string][]models.ChatMessage) map[string][]models.ChatMessage {
	if messages == nil {
		return map[string][]models.ChatMessage{}
	}
	return messages
}

func nonNilNegotiations(negotiations map[string]models.Negotiation) map[string]models.Negotiation {
	if negotiations == nil {
		return map[string]models.Negotiation{}
	}
	return negotiations
}
