package repositories

import (
	"context"

	"github.com/SAP-F-2025/classroom-service/internal/models"
)

// SubmissionRepository interface for submissions and their answers
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	CreateAnswers(ctx context.Context, answers []models.Answer) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Submission, error) // Include answers with questions, student, quiz
	Update(ctx context.Context, submission *models.Submission) error
	UpdateAnswers(ctx context.Context, answers []models.Answer) error

	// Query operations
	ListByQuiz(ctx context.Context, quizID uint, filters SubmissionFilters) ([]*models.Submission, int64, error)
	GetLatestByStudent(ctx context.Context, quizID, studentID uint) (*models.Submission, error)
}

// NotificationLogRepository stores parent notification delivery attempts
type NotificationLogRepository interface {
	Create(ctx context.Context, log *models.NotificationLog) error
	ListBySubmission(ctx context.Context, submissionID uint) ([]*models.NotificationLog, error)
}
