package repository

import (
	"context"
	"fmt"

	"heart-matching-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const saveBatchSize = 100

// GormStore persists collections in MySQL tables. Saves upsert every row of the
// collection inside one transaction; facilities absent from the collection are deleted.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) LoadPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.WithContext(ctx).
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("application_date ASC, id ASC")
		}).
		Order("registration_date ASC, id ASC").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}
	for i := range patients {
		if patients[i].Applications == nil {
			patients[i].Applications = []models.Application{}
		}
	}
	return patients, nil
}

func (s *GormStore) SavePatients(ctx context.Context, patients []models.Patient) error {
	if len(patients) == 0 {
		return nil
	}

	var applications []models.Application
	for _, p := range patients {
		applications = append(applications, p.Applications...)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			CreateInBatches(&patients, saveBatchSize).Error; err != nil {
			return fmt.Errorf("failed to save patients: %w", err)
		}
		if len(applications) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
			CreateInBatches(&applications, saveBatchSize).Error; err != nil {
			return fmt.Errorf("failed to save applications: %w", err)
		}
		return nil
	})
}

func (s *GormStore) LoadFacilities(ctx context.Context) ([]models.Facility, error) {
	var facilities []models.Facility
	if err := s.db.WithContext(ctx).Order("registration_date ASC, id ASC").Find(&facilities).Error; err != nil {
		return nil, fmt.Errorf("failed to load facilities: %w", err)
	}
	return facilities, nil
}

func (s *GormStore) SaveFacilities(ctx context.Context, facilities []models.Facility) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(facilities) == 0 {
			return tx.Where("1 = 1").Delete(&models.Facility{}).Error
		}

		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
			CreateInBatches(&facilities, saveBatchSize).Error; err != nil {
			return fmt.Errorf("failed to save facilities: %w", err)
		}

		ids := make([]string, len(facilities))
		for i, f := range facilities {
			ids[i] = f.ID
		}
		if err := tx.Where("id NOT IN ?", ids).Delete(&models.Facility{}).Error; err != nil {
			return fmt.Errorf("failed to prune facilities: %w", err)
		}
		return nil
	})
}

func (s *GormStore) LoadMessages(ctx context.Context) (map[string][]models.ChatMessage, error) {
	var rows []models.ChatMessage
	if err := s.db.WithContext(ctx).Order("timestamp ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load chat messages: %w", err)
	}

	messages := make(map[string][]models.ChatMessage)
	for _, m := range rows {
		messages[m.PatientID] = append(messages[m.PatientID], m)
	}
	return messages, nil
}

func (s *GormStore) SaveMessages(ctx context.Context, messages map[string][]models.ChatMessage) error {
	var rows []models.ChatMessage
	for _, msgs := range messages {
		rows = append(rows, msgs...)
	}
	if len(rows) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(&rows, saveBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to save chat messages: %w", err)
	}
	return nil
}

func (s *GormStore) LoadNegotiations(ctx context.Context) (map[string]models.Negotiation, error) {
	var rows []models.Negotiation
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load negotiations: %w", err)
	}

	negotiations := make(map[string]models.Negotiation, len(rows))
	for _, n := range rows {
		negotiations[n.PatientID] = n
	}
	return negotiations, nil
}

func (s *GormStore) SaveNegotiations(ctx context.Context, negotiations map[string]models.Negotiation) error {
	if len(negotiations) == 0 {
		return nil
	}
	rows := make([]models.Negotiation, 0, len(negotiations))
	for _, n := range negotiations {
		rows = append(rows, n)
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(&rows, saveBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to save negotiations: %w", err)
	}
	return nil
}
