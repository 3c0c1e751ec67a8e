package postgres

import (
	"context"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"gorm.io/gorm"
)

var contentSortColumns = map[string]bool{
	"created_at": true,
	"title":      true,
}

type ContentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewContentPostgreSQL(db *gorm.DB) repositories.ContentRepository {
	return &ContentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (c ContentPostgreSQL) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	return c.db.WithContext(ctx).Omit("Creator").Create(lesson).Error
}

func (c ContentPostgreSQL) ListLessons(ctx context.Context, filters repositories.ContentFilters) ([]*models.Lesson, error) {
	var lessons []*models.Lesson
	query := c.db.WithContext(ctx).Model(&models.Lesson{}).Preload("Creator")
	query = c.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset, contentSortColumns, "created_at")
	if err := query.Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (c ContentPostgreSQL) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	return c.db.WithContext(ctx).Omit("Creator").Create(announcement).Error
}

func (c ContentPostgreSQL) ListAnnouncements(ctx context.Context, filters repositories.ContentFilters) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	query := c.db.WithContext(ctx).Model(&models.Announcement{}).Preload("Creator")
	query = c.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset, contentSortColumns, "created_at")
	if err := query.Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}
