package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRepository hands out the per-entity mocks. WithTransaction runs the
// callback against the same mocks.
type MockRepository struct {
	mock.Mock
	users       *MockUserRepository
	quizzes     *MockQuizRepository
	submissions *MockSubmissionRepository
	content     *MockContentRepository
	logs        *MockNotificationLogRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:       &MockUserRepository{},
		quizzes:     &MockQuizRepository{},
		submissions: &MockSubmissionRepository{},
		content:     &MockContentRepository{},
		logs:        &MockNotificationLogRepository{},
	}
}

func (m *MockRepository) User() repositories.UserRepository {
	return m.users
}

func (m *MockRepository) Quiz() repositories.QuizRepository {
	return m.quizzes
}

func (m *MockRepository) Submission() repositories.SubmissionRepository {
	return m.submissions
}

func (m *MockRepository) Content() repositories.ContentRepository {
	return m.content
}

func (m *MockRepository) NotificationLog() repositories.NotificationLogRepository {
	return m.logs
}

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx repositories.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) ResetAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepository) SetActive(ctx context.Context, id uint, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) CreateAnswers(ctx context.Context, answers []models.Answer) error {
	args := m.Called(ctx, answers)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) UpdateAnswers(ctx context.Context, answers []models.Answer) error {
	args := m.Called(ctx, answers)
	return args.Error(0)
}

func (m *MockSubmissionRepository) ListByQuiz(ctx context.Context, quizID uint, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	args := m.Called(ctx, quizID, filters)
	return args.Get(0).([]*models.Submission), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubmissionRepository) GetLatestByStudent(ctx context.Context, quizID, studentID uint) (*models.Submission, error) {
	args := m.Called(ctx, quizID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockContentRepository) ListLessons(ctx context.Context, filters repositories.ContentFilters) ([]*models.Lesson, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockContentRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockContentRepository) ListAnnouncements(ctx context.Context, filters repositories.ContentFilters) ([]*models.Announcement, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Announcement), args.Error(1)
}

// MockNotificationLogRepository is a mock implementation of NotificationLogRepository
type MockNotificationLogRepository struct {
	mock.Mock
}

func (m *MockNotificationLogRepository) Create(ctx context.Context, log *models.NotificationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockNotificationLogRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]*models.NotificationLog, error) {
	args := m.Called(ctx, submissionID)
	return args.Get(0).([]*models.NotificationLog), args.Error(1)
}

// ===== FIXTURES =====

func ptr[T any](v T) *T {
	return &v
}

func teacherFixture(id uint) *models.User {
	return &models.User{ID: id, Name: "Ms. Rivera", Email: "rivera@school.test", Role: models.RoleTeacher}
}

func studentFixture(id uint) *models.User {
	return &models.User{
		ID:             id,
		Name:           "Ana",
		Email:          "ana@school.test",
		Role:           models.RoleStudent,
		ParentEmail:    ptr("parent@home.test"),
		ParentWhatsApp: ptr("+15550001111"),
	}
}

// exampleQuiz has a multiple-choice question worth 2 with answer B and a
// free-text question worth 3
func exampleQuiz(ownerID uint) *models.Quiz {
	return &models.Quiz{
		ID:          7,
		Title:       "Fractions",
		IsActive:    true,
		CreatedByID: ownerID,
		Questions: []models.Question{
			{ID: 10, QuizID: 7, Position: 0, Text: "Pick B", Type: models.QuestionMultipleChoice, Options: []string{"A", "B", "C"}, CorrectOption: ptr("B"), Points: 2},
			{ID: 11, QuizID: 7, Position: 1, Text: "Explain", Type: models.QuestionFreeText, Points: 3},
		},
	}
}
