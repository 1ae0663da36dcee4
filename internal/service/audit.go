package service

import (
	"context"

	"heart-matching-backend/internal/repository"

	"go.uber.org/zap"
)

// recordAudit writes an audit entry. A failed write is logged and does not fail the operation.
func recordAudit(ctx context.Context, recorder repository.AuditRecorder, logger *zap.Logger, actor, action, details string) {
	if recorder == nil {
		return
	}
	if err := recorder.CreateAuditLog(ctx, actor, action, details); err != nil {
		logger.Warn("Failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
