package handlers

import (
	"context"
	"io"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.LoginResponse)
	return resp, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*services.Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*services.Claims)
	return claims, args.Error(1)
}

type MockQuizService struct{ mock.Mock }

func (m *MockQuizService) CreateQuiz(ctx context.Context, req *services.CreateQuizRequest, teacherID uint) (*models.Quiz, error) {
	args := m.Called(ctx, req, teacherID)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizService) GetQuiz(ctx context.Context, quizID, userID uint) (*models.Quiz, error) {
	args := m.Called(ctx, quizID, userID)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizService) ListTeacherQuizzes(ctx context.Context, teacherID uint) ([]*models.Quiz, error) {
	args := m.Called(ctx, teacherID)
	quizzes, _ := args.Get(0).([]*models.Quiz)
	return quizzes, args.Error(1)
}

func (m *MockQuizService) ListActiveQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	args := m.Called(ctx)
	quizzes, _ := args.Get(0).([]*models.Quiz)
	return quizzes, args.Error(1)
}

func (m *MockQuizService) ToggleActive(ctx context.Context, quizID, teacherID uint) (*models.Quiz, error) {
	args := m.Called(ctx, quizID, teacherID)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

type MockSubmissionService struct{ mock.Mock }

func (m *MockSubmissionService) Submit(ctx context.Context, quizID, userID uint, req *services.SubmitRequest) (*models.Submission, error) {
	args := m.Called(ctx, quizID, userID, req)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

func (m *MockSubmissionService) Grade(ctx context.Context, submissionID uint, req *services.GradeRequest, graderID uint) (*models.Submission, error) {
	args := m.Called(ctx, submissionID, req, graderID)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

func (m *MockSubmissionService) ListResults(ctx context.Context, quizID, userID uint) ([]*models.Submission, error) {
	args := m.Called(ctx, quizID, userID)
	submissions, _ := args.Get(0).([]*models.Submission)
	return submissions, args.Error(1)
}

type MockContentService struct{ mock.Mock }

func (m *MockContentService) CreateLesson(ctx context.Context, req *services.CreateLessonRequest, teacherID uint) (*models.Lesson, error) {
	args := m.Called(ctx, req, teacherID)
	lesson, _ := args.Get(0).(*models.Lesson)
	return lesson, args.Error(1)
}

func (m *MockContentService) ListLessons(ctx context.Context) ([]*models.Lesson, error) {
	args := m.Called(ctx)
	lessons, _ := args.Get(0).([]*models.Lesson)
	return lessons, args.Error(1)
}

func (m *MockContentService) CreateAnnouncement(ctx context.Context, req *services.CreateAnnouncementRequest, teacherID uint) (*models.Announcement, error) {
	args := m.Called(ctx, req, teacherID)
	announcement, _ := args.Get(0).(*models.Announcement)
	return announcement, args.Error(1)
}

func (m *MockContentService) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	args := m.Called(ctx)
	announcements, _ := args.Get(0).([]*models.Announcement)
	return announcements, args.Error(1)
}

func (m *MockContentService) Dashboard(ctx context.Context, userID uint) (*services.DashboardResponse, error) {
	args := m.Called(ctx, userID)
	dashboard, _ := args.Get(0).(*services.DashboardResponse)
	return dashboard, args.Error(1)
}

func (m *MockContentService) OpenFile(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, name)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

type MockExportService struct{ mock.Mock }

func (m *MockExportService) ExportResults(ctx context.Context, quizID, teacherID uint) ([]byte, error) {
	args := m.Called(ctx, quizID, teacherID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) ResetAll(ctx context.Context, userID uint) (*services.ResetResult, error) {
	args := m.Called(ctx, userID)
	result, _ := args.Get(0).(*services.ResetResult)
	return result, args.Error(1)
}

type mockServiceManager struct {
	auth       *MockAuthService
	quiz       *MockQuizService
	submission *MockSubmissionService
	content    *MockContentService
	export     *MockExportService
	admin      *MockAdminService
}

func newMockServiceManager() *mockServiceManager {
	return &mockServiceManager{
		auth:       &MockAuthService{},
		quiz:       &MockQuizService{},
		submission: &MockSubmissionService{},
		content:    &MockContentService{},
		export:     &MockExportService{},
		admin:      &MockAdminService{},
	}
}

func (m *mockServiceManager) Auth() services.AuthService             { return m.auth }
func (m *mockServiceManager) Quiz() services.QuizService             { return m.quiz }
func (m *mockServiceManager) Submission() services.SubmissionService { return m.submission }
func (m *mockServiceManager) Content() services.ContentService       { return m.content }
func (m *mockServiceManager) Export() services.ExportService         { return m.export }
func (m *mockServiceManager) Admin() services.AdminService           { return m.admin }
