package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/classroom-service/internal/cache"
	"github.com/SAP-F-2025/classroom-service/internal/events"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-service/internal/storage"
)

type AdminService interface {
	// ResetAll irreversibly deletes every row and every stored upload
	ResetAll(ctx context.Context, userID uint) (*ResetResult, error)
}

type ResetResult struct {
	FilesRemoved int       `json:"files_removed"`
	ResetAt      time.Time `json:"reset_at"`
}

type adminService struct {
	repo      repositories.Repository
	storage   storage.FileStorage
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewAdminService(repo repositories.Repository, fileStorage storage.FileStorage, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		storage:   fileStorage,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		ops:       NewServiceLogger(logger, "admin"),
	}
}

func (s *adminService) ResetAll(ctx context.Context, userID uint) (result *ResetResult, err error) {
	op := s.ops.WithOperation(ctx, "reset_all", userID)
	defer func() { op.LogResult(0, "data", err) }()

	if _, err := requireTeacher(ctx, s.repo, userID, "data", "reset"); err != nil {
		return nil, err
	}

	s.logger.Warn("Resetting all data", "user_id", userID)

	if err := s.repo.ResetAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset data: %w", err)
	}

	removed, err := s.storage.Clear(ctx)
	if err != nil {
		s.logger.Warn("Failed to clear uploads", "removed", removed, "error", err)
	}

	if err := s.cache.DeletePattern(ctx, "quizzes:*"); err != nil {
		s.logger.Warn("Failed to clear quiz cache", "error", err)
	}

	result = &ResetResult{FilesRemoved: removed, ResetAt: time.Now().UTC()}
	publishEvent(ctx, s.publisher, s.logger, events.NewDataResetEvent(events.DataResetEvent{
		ActorID:      userID,
		ResetAt:      result.ResetAt,
		FilesRemoved: removed,
	}))

	s.logger.Warn("All data reset", "files_removed", removed)
	return result, nil
}
