package repository

import (
	"context"
	"sync"

	"heart-matching-backend/internal/models"
)

// MemoryStore keeps collections in process memory. Used when no external store is configured and in tests.
type MemoryStore struct {
	mu           sync.RWMutex
	patients     []models.Patient
	facilities   []models.Facility
	messages     map[string][]models.ChatMessage
	negotiations map[string]models.Negotiation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages:     map[string][]models.ChatMessage{},
		negotiations: map[string]models.Negotiation{},
	}
}

func (s *MemoryStore) LoadPatients(_ context.Context) ([]models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ClonePatients(s.patients), nil
}

func (s *MemoryStore) SavePatients(_ context.Context, patients []models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients = ClonePatients(patients)
	return nil
}

func (s *MemoryStore) LoadFacilities(_ context.Context) ([]models.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneFacilities(s.facilities), nil
}

func (s *MemoryStore) SaveFacilities(_ context.Context, facilities []models.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facilities = CloneFacilities(facilities)
	return nil
}

func (s *MemoryStore) LoadMessages(_ context.Context) (map[string][]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneMessages(s.messages), nil
}

func (s *MemoryStore) SaveMessages(_ context.Context, messages map[string][]models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = CloneMessages(messages)
	return nil
}

func (s *MemoryStore) LoadNegotiations(_ context.Context) (map[string]models.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneNegotiations(s.negotiations), nil
}

func (s *MemoryStore) SaveNegotiations(_ context.Context, negotiations map[string]models.Negotiation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.negotiations = CloneNegotiations(negotiations)
	return nil
}
