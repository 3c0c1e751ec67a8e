package repositories

import (
	"context"

	"github.com/SAP-F-2025/classroom-service/internal/models"
)

// ContentRepository interface for lessons and announcements
type ContentRepository interface {
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	ListLessons(ctx context.Context, filters ContentFilters) ([]*models.Lesson, error)

	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	ListAnnouncements(ctx context.Context, filters ContentFilters) ([]*models.Announcement, error)
}
