package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/classroom-service/internal/cache"
	"github.com/SAP-F-2025/classroom-service/internal/events"
	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-service/internal/validator"
)

type QuizService interface {
	CreateQuiz(ctx context.Context, req *CreateQuizRequest, teacherID uint) (*models.Quiz, error)
	GetQuiz(ctx context.Context, quizID, userID uint) (*models.Quiz, error)
	ListTeacherQuizzes(ctx context.Context, teacherID uint) ([]*models.Quiz, error)
	ListActiveQuizzes(ctx context.Context) ([]*models.Quiz, error)
	ToggleActive(ctx context.Context, quizID, teacherID uint) (*models.Quiz, error)
}

type CreateQuizRequest struct {
	Title       string         `json:"title" validate:"required,notblank,max=255"`
	Description *string        `json:"description"`
	Questions   []QuestionSpec `json:"questions"`
}

type QuestionSpec struct {
	Text          string              `json:"text"`
	Type          models.QuestionType `json:"type"`
	Points        *int                `json:"points"`
	Options       []string            `json:"options"`
	CorrectOption *string             `json:"correct_option"`
}

type quizService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	cacheTTL  time.Duration
	ops       *ServiceLogger
}

func NewQuizService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, cacheTTL time.Duration) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		cacheTTL:  cacheTTL,
		ops:       NewServiceLogger(logger, "quiz"),
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, req *CreateQuizRequest, teacherID uint) (result *models.Quiz, err error) {
	op := s.ops.WithOperation(ctx, "create_quiz", teacherID)
	defer func() {
		var id uint
		if result != nil {
			id = result.ID
		}
		op.LogResult(id, "quiz", err)
	}()

	if _, err := requireTeacher(ctx, s.repo, teacherID, "quiz", "create"); err != nil {
		return nil, err
	}

	quiz, err := s.buildQuiz(req, teacherID)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Quiz().Create(ctx, quiz); err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateActiveQuizzes(ctx)
	publishEvent(ctx, s.publisher, s.logger, events.NewQuizCreatedEvent(events.QuizCreatedEvent{
		QuizID:        quiz.ID,
		Title:         quiz.Title,
		QuestionCount: len(quiz.Questions),
		TotalPoints:   quiz.TotalPoints(),
		CreatorID:     teacherID,
	}))

	return quiz, nil
}

// buildQuiz validates the request and returns the normalized quiz. Nothing is
// persisted when it fails.
func (s *quizService) buildQuiz(req *CreateQuizRequest, teacherID uint) (*models.Quiz, error) {
	var errs ValidationErrors
	if err := s.validator.Validate(req); err != nil {
		if !errors.As(err, &errs) {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
	}

	questions := make([]models.Question, len(req.Questions))
	for i, spec := range req.Questions {
		questions[i] = models.Question{
			Text:          spec.Text,
			Type:          models.QuestionType(strings.TrimSpace(string(spec.Type))),
			Points:        s.validator.Quiz().NormalizePoints(spec.Points),
			Options:       spec.Options,
			CorrectOption: spec.CorrectOption,
		}
	}
	if err := s.validator.Quiz().ValidateQuestions(questions); err != nil {
		var qerrs ValidationErrors
		if !errors.As(err, &qerrs) {
			return nil, err
		}
		errs = append(errs, qerrs...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &models.Quiz{
		Title:       strings.TrimSpace(req.Title),
		Description: trimOptional(req.Description),
		IsActive:    true,
		CreatedByID: teacherID,
		Questions:   questions,
	}, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID, userID uint) (*models.Quiz, error) {
	user, err := loadUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if user.CanManageQuiz(quiz) {
		return quiz, nil
	}
	if !user.IsTeacher() && !quiz.IsActive {
		return nil, ErrQuizNotFound
	}

	// hide the answer key from anyone but the owner
	for i := range quiz.Questions {
		quiz.Questions[i].CorrectOption = nil
	}
	return quiz, nil
}

func (s *quizService) ListTeacherQuizzes(ctx context.Context, teacherID uint) ([]*models.Quiz, error) {
	quizzes, _, err := s.repo.Quiz().List(ctx, repositories.QuizFilters{CreatedBy: &teacherID})
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *quizService) ListActiveQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	var cached []*models.Quiz
	if err := s.cache.Get(ctx, cache.KeyActiveQuizzes, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Failed to read active quizzes from cache", "error", err)
	}

	quizzes, _, err := s.repo.Quiz().List(ctx, repositories.QuizFilters{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list active quizzes: %w", err)
	}

	if err := s.cache.Set(ctx, cache.KeyActiveQuizzes, quizzes, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache active quizzes", "error", err)
	}
	return quizzes, nil
}

func (s *quizService) ToggleActive(ctx context.Context, quizID, teacherID uint) (result *models.Quiz, err error) {
	op := s.ops.WithOperation(ctx, "toggle_quiz", teacherID)
	defer func() { op.LogResult(quizID, "quiz", err) }()

	teacher, err := requireTeacher(ctx, s.repo, teacherID, "quiz", "toggle")
	if err != nil {
		return nil, err
	}

	var quiz *models.Quiz
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		quiz, err = tx.Quiz().GetByID(ctx, quizID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrQuizNotFound
			}
			return fmt.Errorf("failed to get quiz: %w", err)
		}
		if !teacher.CanManageQuiz(quiz) {
			return NewPermissionError(teacherID, quizID, "quiz", "toggle", "not the quiz owner")
		}

		quiz.IsActive = !quiz.IsActive
		if err := tx.Quiz().SetActive(ctx, quiz.ID, quiz.IsActive); err != nil {
			return fmt.Errorf("failed to update quiz: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateActiveQuizzes(ctx)
	publishEvent(ctx, s.publisher, s.logger, events.NewQuizToggledEvent(events.QuizToggledEvent{
		QuizID:   quiz.ID,
		IsActive: quiz.IsActive,
		ActorID:  teacherID,
	}))

	s.logger.Info("Quiz toggled", "quiz_id", quiz.ID, "is_active", quiz.IsActive)
	return quiz, nil
}

func (s *quizService) invalidateActiveQuizzes(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyActiveQuizzes); err != nil {
		s.logger.Warn("Failed to invalidate active quiz cache", "error", err)
	}
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
