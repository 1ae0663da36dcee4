package main

import (
	"context"
	"fmt"

	"heart-matching-backend/internal/config"
	"heart-matching-backend/internal/database"
	"heart-matching-backend/internal/handler"
	"heart-matching-backend/internal/repository"
	"heart-matching-backend/internal/service"

	"go.uber.org/zap"
)

// app holds the storage backend and the services built on it
type app struct {
	registry *service.Registry
	audit    repository.AuditRecorder
	logger   *zap.Logger
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{logger: log}

	var store repository.Store
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := database.Connect(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		store = repository.NewGormStore(db)
		a.audit = repository.NewAuditRepo(db)
	case config.StorageRedis:
		client, err := database.ConnectRedis(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		store = repository.NewRedisStore(client, cfg.Redis.KeyPrefix)
		a.audit = repository.NewLogAuditRepo(log)
	default:
		store = repository.NewMemoryStore()
		a.audit = repository.NewLogAuditRepo(log)
	}

	a.registry = service.NewRegistry(store, log)
	if err := a.registry.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return a, nil
}

func (a *app) services() handler.Services {
	facilities := service.NewFacilityService(a.registry, a.audit, a.logger)
	return handler.Services{
		Auth:         service.NewAuthService(facilities, a.audit, a.logger),
		Patients:     service.NewPatientService(a.registry, a.logger),
		Applications: service.NewApplicationService(a.registry, a.audit, a.logger),
		Facilities:   facilities,
		Matching:     service.NewMatchingService(a.registry),
		Chat:         service.NewChatService(a.registry, a.logger),
	}
}

// Close flushes pending writes and releases the backend connections
func (a *app) Close() {
	if err := a.registry.Flush(context.Background()); err != nil {
		a.logger.Warn("final flush failed", zap.Error(err))
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("failed to close backend", zap.Error(err))
		}
	}
}
