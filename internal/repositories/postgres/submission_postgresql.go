package postgres

import (
	"context"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"gorm.io/gorm"
)

var submissionSortColumns = map[string]bool{
	"submitted_at": true,
	"total_score":  true,
}

type SubmissionPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (s SubmissionPostgreSQL) Create(ctx context.Context, submission *models.Submission) error {
	// Answers are written separately so file references can use the submission id
	return s.db.WithContext(ctx).Omit("Answers").Create(submission).Error
}

func (s SubmissionPostgreSQL) CreateAnswers(ctx context.Context, answers []models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Omit("Question").Create(&answers).Error
}

func (s SubmissionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s SubmissionPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	if err := s.withDetails(s.db.WithContext(ctx)).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s SubmissionPostgreSQL) Update(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).
		Model(submission).
		Select("total_score", "graded").
		Updates(map[string]interface{}{
			"total_score": submission.TotalScore,
			"graded":      submission.Graded,
		}).Error
}

func (s SubmissionPostgreSQL) UpdateAnswers(ctx context.Context, answers []models.Answer) error {
	db := s.db.WithContext(ctx)
	for i := range answers {
		if err := db.Model(&answers[i]).
			Select("is_correct", "score").
			Updates(map[string]interface{}{
				"is_correct": answers[i].IsCorrect,
				"score":      answers[i].Score,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s SubmissionPostgreSQL) ListByQuiz(ctx context.Context, quizID uint, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	var submissions []*models.Submission
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Submission{}).Where("quiz_id = ?", quizID)
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.Graded != nil {
		query = query.Where("graded = ?", *filters.Graded)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset, submissionSortColumns, "submitted_at")

	if err := s.withDetails(query).Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (s SubmissionPostgreSQL) GetLatestByStudent(ctx context.Context, quizID, studentID uint) (*models.Submission, error) {
	var submission models.Submission
	if err := s.withDetails(s.db.WithContext(ctx)).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Order("submitted_at DESC").
		Order("id DESC").
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s SubmissionPostgreSQL) withDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Answers.Question").
		Preload("Student").
		Preload("Quiz")
}

type NotificationLogPostgreSQL struct {
	db *gorm.DB
}

func NewNotificationLogPostgreSQL(db *gorm.DB) repositories.NotificationLogRepository {
	return &NotificationLogPostgreSQL{db: db}
}

func (n NotificationLogPostgreSQL) Create(ctx context.Context, log *models.NotificationLog) error {
	return n.db.WithContext(ctx).Create(log).Error
}

func (n NotificationLogPostgreSQL) ListBySubmission(ctx context.Context, submissionID uint) ([]*models.NotificationLog, error) {
	var logs []*models.NotificationLog
	if err := n.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
