package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/classroom-service/internal/events"
	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-service/internal/storage"
)

type SubmissionService interface {
	Submit(ctx context.Context, quizID, userID uint, req *SubmitRequest) (*models.Submission, error)
	Grade(ctx context.Context, submissionID uint, req *GradeRequest, graderID uint) (*models.Submission, error)
	ListResults(ctx context.Context, quizID, userID uint) ([]*models.Submission, error)
}

// FileUpload is an uploaded artifact as received from the client
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// AnswerInput is what the student sent for one question. Both fields may be
// absent.
type AnswerInput struct {
	Text *string
	File *FileUpload
}

type SubmitRequest struct {
	Answers map[uint]AnswerInput
}

// GradeRequest carries raw scores keyed by answer id. Values are parsed
// leniently: anything that is not an integer counts as 0.
type GradeRequest struct {
	Scores map[uint]string
}

type submissionService struct {
	repo      repositories.Repository
	storage   storage.FileStorage
	notifier  NotificationService
	publisher events.EventPublisher
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewSubmissionService(repo repositories.Repository, fileStorage storage.FileStorage, notifier NotificationService, publisher events.EventPublisher, logger *slog.Logger) SubmissionService {
	return &submissionService{
		repo:      repo,
		storage:   fileStorage,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		ops:       NewServiceLogger(logger, "submission"),
	}
}

// ===== SUBMIT =====

func (s *submissionService) Submit(ctx context.Context, quizID, userID uint, req *SubmitRequest) (result *models.Submission, err error) {
	op := s.ops.WithOperation(ctx, "submit_quiz", userID)
	defer func() { op.LogResult(quizID, "quiz", err) }()

	student, err := loadUser(ctx, s.repo, userID)
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

	if req == nil {
		req = &SubmitRequest{}
	}

	submission := &models.Submission{
		QuizID:      quiz.ID,
		StudentID:   student.ID,
		SubmittedAt: time.Now().UTC(),
	}

	var savedFiles []string
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Submission().Create(ctx, submission); err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}

		answers := make([]models.Answer, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			question := &quiz.Questions[i]
			answer, err := s.buildAnswer(ctx, submission.ID, question, req.Answers[question.ID], &savedFiles)
			if err != nil {
				return err
			}
			answers = append(answers, answer)
		}

		if err := tx.Submission().CreateAnswers(ctx, answers); err != nil {
			return fmt.Errorf("failed to create answers: %w", err)
		}

		submission.Answers = answers
		submission.RefreshGrading()
		if err := tx.Submission().Update(ctx, submission); err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}
		return nil
	})
	if err != nil {
		s.removeFiles(ctx, savedFiles)
		return nil, err
	}

	s.logger.Info("Quiz submitted",
		"submission_id", submission.ID,
		"quiz_id", quiz.ID,
		"graded", submission.Graded)

	if student.IsStudent() {
		s.notifier.NotifySubmission(ctx, student, quiz, submission)
	}
	publishEvent(ctx, s.publisher, s.logger, events.NewSubmissionCreatedEvent(events.SubmissionCreatedEvent{
		SubmissionID: submission.ID,
		QuizID:       quiz.ID,
		QuizTitle:    quiz.Title,
		StudentID:    student.ID,
		SubmittedAt:  submission.SubmittedAt,
		Graded:       submission.Graded,
		TotalScore:   submission.TotalScore,
		PendingCount: countPending(submission.Answers),
	}))

	submission.Quiz = quiz
	submission.Student = student
	return submission, nil
}

// buildAnswer scores one question. Multiple-choice answers are graded
// immediately; text and file answers wait for a teacher.
func (s *submissionService) buildAnswer(ctx context.Context, submissionID uint, question *models.Question, input AnswerInput, savedFiles *[]string) (models.Answer, error) {
	answer := models.Answer{
		SubmissionID: submissionID,
		QuestionID:   question.ID,
	}

	switch question.Type {
	case models.QuestionMultipleChoice:
		submitted := textOrEmpty(input.Text)
		correct := strings.TrimSpace(submitted) == strings.TrimSpace(question.Correct())
		score := 0
		if correct {
			score = question.Points
		}
		answer.AnswerText = &submitted
		answer.IsCorrect = &correct
		answer.Score = &score

	case models.QuestionFreeText:
		submitted := textOrEmpty(input.Text)
		answer.AnswerText = &submitted

	case models.QuestionFileUpload:
		if input.File == nil || input.File.Content == nil || !storage.IsValidName(input.File.Filename) {
			break
		}
		name := storage.AnswerFileName(submissionID, question.ID, input.File.Filename)
		ref, err := s.storage.Save(ctx, name, input.File.Content)
		if err != nil {
			return answer, fmt.Errorf("failed to store answer file: %w", err)
		}
		*savedFiles = append(*savedFiles, ref)
		answer.FileRef = &ref
	}

	return answer, nil
}

func (s *submissionService) removeFiles(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.storage.Delete(ctx, ref); err != nil {
			s.logger.Warn("Failed to remove orphaned answer file", "ref", ref, "error", err)
		}
	}
}

// ===== GRADE =====

func (s *submissionService) Grade(ctx context.Context, submissionID uint, req *GradeRequest, graderID uint) (result *models.Submission, err error) {
	op := s.ops.WithOperation(ctx, "grade_submission", graderID)
	defer func() { op.LogResult(submissionID, "submission", err) }()

	grader, err := requireTeacher(ctx, s.repo, graderID, "submission", "grade")
	if err != nil {
		return nil, err
	}

	submission, err := s.repo.Submission().GetByIDWithDetails(ctx, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if !grader.CanManageQuiz(submission.Quiz) {
		return nil, NewPermissionError(graderID, submissionID, "submission", "grade", "not the quiz owner")
	}

	var scores map[uint]string
	if req != nil {
		scores = req.Scores
	}
	applyManualScores(submission, scores)

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Submission().UpdateAnswers(ctx, submission.Answers); err != nil {
			return fmt.Errorf("failed to update answers: %w", err)
		}
		if err := tx.Submission().Update(ctx, submission); err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submission graded", "submission_id", submission.ID, "total_score", *submission.TotalScore)

	if submission.Student != nil && submission.Quiz != nil {
		s.notifier.NotifyGraded(ctx, submission.Student, submission.Quiz, submission)
	}
	publishEvent(ctx, s.publisher, s.logger, events.NewSubmissionGradedEvent(events.SubmissionGradedEvent{
		SubmissionID: submission.ID,
		QuizID:       submission.QuizID,
		QuizTitle:    quizTitle(submission.Quiz),
		StudentID:    submission.StudentID,
		GraderID:     graderID,
		GradedAt:     time.Now().UTC(),
		TotalScore:   *submission.TotalScore,
		MaxScore:     maxScore(submission.Answers),
	}))

	return submission, nil
}

// applyManualScores writes teacher scores into text and file answers, fills
// every remaining gap with 0 and marks the submission graded.
func applyManualScores(submission *models.Submission, scores map[uint]string) {
	total := 0
	for i := range submission.Answers {
		answer := &submission.Answers[i]
		if answer.Question != nil && answer.Question.Type.IsManuallyGraded() {
			score := clampScore(parseScore(scores[answer.ID]), answer.Question.Points)
			answer.Score = &score
			answer.IsCorrect = nil
		}
		if answer.Score == nil {
			zero := 0
			answer.Score = &zero
		}
		total += *answer.Score
	}
	submission.TotalScore = &total
	submission.Graded = true
}

// parseScore reads a base-10 integer, treating anything else as 0. A value
// that overflows int is unparseable too, so it scores 0 rather than max.
func parseScore(raw string) int {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return score
}

func clampScore(score, points int) int {
	return max(0, min(score, points))
}

// ===== RESULTS =====

func (s *submissionService) ListResults(ctx context.Context, quizID, userID uint) ([]*models.Submission, error) {
	user, err := loadUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if user.IsTeacher() {
		if !user.CanManageQuiz(quiz) {
			return nil, NewPermissionError(userID, quizID, "quiz", "view results", "not the quiz owner")
		}
		submissions, _, err := s.repo.Submission().ListByQuiz(ctx, quizID, repositories.SubmissionFilters{})
		if err != nil {
			return nil, fmt.Errorf("failed to list submissions: %w", err)
		}
		return submissions, nil
	}

	latest, err := s.repo.Submission().GetLatestByStudent(ctx, quizID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoSubmission
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return []*models.Submission{latest}, nil
}

// ===== HELPERS =====

func textOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func countPending(answers []models.Answer) int {
	pending := 0
	for i := range answers {
		if answers[i].IsPending() {
			pending++
		}
	}
	return pending
}

func maxScore(answers []models.Answer) int {
	total := 0
	for i := range answers {
		if answers[i].Question != nil {
			total += answers[i].Question.Points
		}
	}
	return total
}

func quizTitle(quiz *models.Quiz) string {
	if quiz == nil {
		return ""
	}
	return quiz.Title
}
