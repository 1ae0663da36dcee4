package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"heart-matching-backend/internal/models"

	"github.com/go-redis/redis/v8"
)

// Keys under the configured prefix, one JSON document per collection
const (
	patientsKey     = "patients"
	facilitiesKey   = "facilities"
	messagesKey     = "chat_messages"
	negotiationsKey = "negotiation_statuses"
)

// RedisStore keeps each collection as a single JSON snapshot
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) LoadPatients(ctx context.Context) ([]models.Patient, error) {
	patients := []models.Patient{}
	if err := s.load(ctx, patientsKey, &patients); err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].Status == "" {
			patients[i].Status = models.PatientAvailable
		}
		if patients[i].Applications == nil {
			patients[i].Applications = []models.Application{}
		}
	}
	return patients, nil
}

func (s *RedisStore) SavePatients(ctx context.Context, patients []models.Patient) error {
	return s.save(ctx, patientsKey, patients)
}

func (s *RedisStore) LoadFacilities(ctx context.Context) ([]models.Facility, error) {
	facilities := []models.Facility{}
	if err := s.load(ctx, facilitiesKey, &facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

func (s *RedisStore) SaveFacilities(ctx context.Context, facilities []models.Facility) error {
	return s.save(ctx, facilitiesKey, facilities)
}

func (s *RedisStore) LoadMessages(ctx context.Context) (map[string][]models.ChatMessage, error) {
	messages := map[string][]models.ChatMessage{}
	if err := s.load(ctx, messagesKey, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *RedisStore) SaveMessages(ctx context.Context, messages map[string][]models.ChatMessage) error {
	return s.save(ctx, messagesKey, messages)
}

func (s *RedisStore) LoadNegotiations(ctx context.Context) (map[string]models.Negotiation, error) {
	negotiations := map[string]models.Negotiation{}
	if err := s.load(ctx, negotiationsKey, &negotiations); err != nil {
		return nil, err
	}
	return negotiations, nil
}

func (s *RedisStore) SaveNegotiations(ctx context.Context, negotiations map[string]models.Negotiation) error {
	return s.save(ctx, negotiationsKey, negotiations)
}

// load decodes the snapshot at key into dst. A missing key leaves dst untouched.
func (s *RedisStore) load(ctx context.Context, key string, dst interface{}) error {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.prefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
