package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-service/internal/storage"
	"github.com/SAP-F-2025/classroom-service/internal/validator"
)

type ContentService interface {
	CreateLesson(ctx context.Context, req *CreateLessonRequest, teacherID uint) (*models.Lesson, error)
	ListLessons(ctx context.Context) ([]*models.Lesson, error)
	CreateAnnouncement(ctx context.Context, req *CreateAnnouncementRequest, teacherID uint) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	Dashboard(ctx context.Context, userID uint) (*DashboardResponse, error)
	OpenFile(ctx context.Context, name string) (io.ReadCloser, error)
}

type CreateLessonRequest struct {
	Title       string      `json:"title" form:"title" validate:"required,notblank,max=255"`
	Description *string     `json:"description" form:"description"`
	File        *FileUpload `json:"-" form:"-"`
}

type CreateAnnouncementRequest struct {
	Title   string `json:"title" form:"title" validate:"required,notblank,max=255"`
	Content string `json:"content" form:"content" validate:"required,notblank"`
}

// DashboardResponse holds what the landing page shows for a role. Teachers
// get their quizzes; students get announcements, active quizzes and lessons.
type DashboardResponse struct {
	Role          models.UserRole        `json:"role"`
	Quizzes       []*models.Quiz         `json:"quizzes"`
	Lessons       []*models.Lesson       `json:"lessons,omitempty"`
	Announcements []*models.Announcement `json:"announcements,omitempty"`
}

type contentService struct {
	repo      repositories.Repository
	storage   storage.FileStorage
	quizzes   QuizService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContentService(repo repositories.Repository, fileStorage storage.FileStorage, quizzes QuizService, logger *slog.Logger, validator *validator.Validator) ContentService {
	return &contentService{
		repo:      repo,
		storage:   fileStorage,
		quizzes:   quizzes,
		logger:    logger,
		validator: validator,
	}
}

func (s *contentService) CreateLesson(ctx context.Context, req *CreateLessonRequest, teacherID uint) (*models.Lesson, error) {
	if _, err := requireTeacher(ctx, s.repo, teacherID, "lesson", "create"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		Title:       strings.TrimSpace(req.Title),
		Description: trimOptional(req.Description),
		CreatedByID: teacherID,
	}

	if req.File != nil && req.File.Content != nil && storage.IsValidName(req.File.Filename) {
		ref, err := s.storage.Save(ctx, storage.LessonFileName(req.File.Filename), req.File.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store lesson file: %w", err)
		}
		lesson.FileRef = &ref
	}

	if err := s.repo.Content().CreateLesson(ctx, lesson); err != nil {
		if lesson.FileRef != nil {
			if derr := s.storage.Delete(ctx, *lesson.FileRef); derr != nil {
				s.logger.Warn("Failed to remove orphaned lesson file", "ref", *lesson.FileRef, "error", derr)
			}
		}
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.Info("Lesson created", "lesson_id", lesson.ID, "teacher_id", teacherID)
	return lesson, nil
}

func (s *contentService) ListLessons(ctx context.Context) ([]*models.Lesson, error) {
	lessons, err := s.repo.Content().ListLessons(ctx, repositories.ContentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

func (s *contentService) CreateAnnouncement(ctx context.Context, req *CreateAnnouncementRequest, teacherID uint) (*models.Announcement, error) {
	if _, err := requireTeacher(ctx, s.repo, teacherID, "announcement", "create"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		Title:       strings.TrimSpace(req.Title),
		Content:     strings.TrimSpace(req.Content),
		CreatedByID: teacherID,
	}
	if err := s.repo.Content().CreateAnnouncement(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.logger.Info("Announcement created", "announcement_id", announcement.ID, "teacher_id", teacherID)
	return announcement, nil
}

func (s *contentService) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	announcements, err := s.repo.Content().ListAnnouncements(ctx, repositories.ContentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

func (s *contentService) Dashboard(ctx context.Context, userID uint) (*DashboardResponse, error) {
	user, err := loadUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{Role: user.Role}
	if user.IsTeacher() {
		if resp.Quizzes, err = s.quizzes.ListTeacherQuizzes(ctx, user.ID); err != nil {
			return nil, err
		}
		return resp, nil
	}

	if resp.Announcements, err = s.ListAnnouncements(ctx); err != nil {
		return nil, err
	}
	if resp.Quizzes, err = s.quizzes.ListActiveQuizzes(ctx); err != nil {
		return nil, err
	}
	if resp.Lessons, err = s.ListLessons(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *contentService) OpenFile(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.storage.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return rc, nil
}
