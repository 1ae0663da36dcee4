package repository

import (
	"context"

	"heart-matching-backend/internal/models"
)

// Store persists whole collections. Every save replaces the stored collection,
// so concurrent writers resolve as last-writer-wins per collection.
type Store interface {
	LoadPatients(ctx context.Context) ([]models.Patient, error)
	SavePatients(ctx context.Context, patients []models.Patient) error

	LoadFacilities(ctx context.Context) ([]models.Facility, error)
	SaveFacilities(ctx context.Context, facilities []models.Facility) error

	// Chat messages keyed by patient ID
	LoadMessages(ctx context.Context) (map[string][]models.ChatMessage, error)
	SaveMessages(ctx context.Context, messages map[string][]models.ChatMessage) error

	// Negotiation records keyed by patient ID
	LoadNegotiations(ctx context.Context) (map[string]models.Negotiation, error)
	SaveNegotiations(ctx context.Context, negotiations map[string]models.Negotiation) error
}

// ClonePatients deep-copies a patient collection
func ClonePatients(patients []models.Patient) []models.Patient {
	out := make([]models.Patient, len(patients))
	for i, p := range patients {
		out[i] = p.Clone()
	}
	return out
}

// CloneFacilities deep-copies a facility collection
func CloneFacilities(facilities []models.Facility) []models.Facility {
	out := make([]models.Facility, len(facilities))
	for i, f := range facilities {
		out[i] = f.Clone()
	}
	return out
}

// CloneMessages deep-copies a message map
func CloneMessages(messages map[string][]models.ChatMessage) map[string][]models.ChatMessage {
	out := make(map[string][]models.ChatMessage, len(messages))
	for patientID, msgs := range messages {
		out[patientID] = append([]models.ChatMessage(nil), msgs...)
	}
	return out
}

// CloneNegotiations deep-copies a negotiation map
func CloneNegotiations(negotiations map[string]models.Negotiation) map[string]models.Negotiation {
	out := make(map[string]models.Negotiation, len(negotiations))
	for patientID, n := range negotiations {
		if n.RespondingFacility != nil {
			responding := *n.RespondingFacility
			n.RespondingFacility = &responding
		}
		out[patientID] = n
	}
	return out
}
