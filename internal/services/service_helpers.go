package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/classroom-service/internal/events"
	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
)

// loadUser maps a missing row to ErrUserNotFound
func loadUser(ctx context.Context, repo repositories.Repository, userID uint) (*models.User, error) {
	user, err := repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// requireTeacher loads the user and rejects anyone who is not a teacher
func requireTeacher(ctx context.Context, repo repositories.Repository, userID uint, resource, action string) (*models.User, error) {
	user, err := loadUser(ctx, repo, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsTeacher() {
		return nil, NewPermissionError(userID, 0, resource, action, "teacher role required")
	}
	return user, nil
}

// publishEvent never fails the caller; a nil publisher is allowed
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
