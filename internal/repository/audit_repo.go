package repository

import (
	"context"
	"time"

	"heart-matching-backend/internal/models"
	"heart-matching-backend/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditRecorder records who did what. Failures are reported to the caller but
// never undo the audited change.
type AuditRecorder interface {
	CreateAuditLog(ctx context.Context, actor, action, details string) error
}

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(ctx context.Context, actor, action, details string) error {
	log := &models.AuditLog{
		ID:        utils.GenerateID(),
		Actor:     actor,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// LogAuditRepository writes audit entries to the structured log.
// Used when storage is not backed by a database.
type LogAuditRepository struct {
	logger *zap.Logger
}

func NewLogAuditRepo(logger *zap.Logger) *LogAuditRepository {
	return &LogAuditRepository{logger: logger.Named("audit")}
}

func (r *LogAuditRepository) CreateAuditLog(_ context.Context, actor, action, details string) error {
	r.logger.Info(action,
		zap.String("actor", actor),
		zap.String("details", details),
	)
	return nil
}
