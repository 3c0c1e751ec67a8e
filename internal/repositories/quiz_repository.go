package repositories

import (
	"context"

	"github.com/SAP-F-2025/classroom-service/internal/models"
)

// QuizRepository interface for quiz and question operations
type QuizRepository interface {
	// Create inserts the quiz together with its questions
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) // questions ordered by position
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)
	SetActive(ctx context.Context, id uint, active bool) error
}
