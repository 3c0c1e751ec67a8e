package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB

	user            repositories.UserRepository
	quiz            repositories.QuizRepository
	submission      repositories.SubmissionRepository
	content         repositories.ContentRepository
	notificationLog repositories.NotificationLogRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:              db,
		user:            NewUserPostgreSQL(db),
		quiz:            NewQuizPostgreSQL(db),
		submission:      NewSubmissionPostgreSQL(db),
		content:         NewContentPostgreSQL(db),
		notificationLog: NewNotificationLogPostgreSQL(db),
	}
}

func (r *Repository) User() repositories.UserRepository {
	return r.user
}

func (r *Repository) Quiz() repositories.QuizRepository {
	return r.quiz
}

func (r *Repository) Submission() repositories.SubmissionRepository {
	return r.submission
}

func (r *Repository) Content() repositories.ContentRepository {
	return r.content
}

func (r *Repository) NotificationLog() repositories.NotificationLogRepository {
	return r.notificationLog
}

// WithTransaction runs fn against repositories bound to a single transaction.
// The transaction is rolled back when fn returns an error or panics.
func (r *Repository) WithTransaction(ctx context.Context, fn func(tx repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// ResetAll deletes all rows, children before parents
func (r *Repository) ResetAll(ctx context.Context) error {
	tables := []interface{}{
		&models.NotificationLog{},
		&models.Answer{},
		&models.Submission{},
		&models.Question{},
		&models.Quiz{},
		&models.Lesson{},
		&models.Announcement{},
		&models.User{},
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", table, err)
			}
		}
		return nil
	})
}

// Migrate creates or updates the schema for every model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
