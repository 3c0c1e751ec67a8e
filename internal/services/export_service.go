package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

type ExportService interface {
	// ExportResults renders every submission of the quiz as an xlsx workbook
	ExportResults(ctx context.Context, quizID, teacherID uint) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportResults(ctx context.Context, quizID, teacherID uint) ([]byte, error) {
	teacher, err := requireTeacher(ctx, s.repo, teacherID, "quiz", "export results")
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
	if !teacher.CanManageQuiz(quiz) {
		return nil, NewPermissionError(teacherID, quizID, "quiz", "export results", "not the quiz owner")
	}

	submissions, _, err := s.repo.Submission().ListByQuiz(ctx, quizID, repositories.SubmissionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	data, err := buildResultsWorkbook(quiz, submissions)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Exported quiz results", "quiz_id", quizID, "rows", len(submissions))
	return data, nil
}

func buildResultsWorkbook(quiz *models.Quiz, submissions []*models.Submission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []interface{}{"Student", "Email", "Submitted At", "Graded", "Total Score"}
	for i := range quiz.Questions {
		headers = append(headers, fmt.Sprintf("Q%d (%d pts)", i+1, quiz.Questions[i].Points))
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for rowIndex, submission := range submissions {
		row := resultRow(quiz, submission)
		cell, err := excelize.CoordinatesToCellName(1, rowIndex+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write result row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// resultRow lists one submission; pending scores stay blank
func resultRow(quiz *models.Quiz, submission *models.Submission) []interface{} {
	name, email := "", ""
	if submission.Student != nil {
		name, email = submission.Student.Name, submission.Student.Email
	}

	row := []interface{}{name, email, submission.SubmittedAt.Format("2006-01-02 15:04:05"), submission.Graded, scoreCell(submission.TotalScore)}

	scores := make(map[uint]*int, len(submission.Answers))
	for i := range submission.Answers {
		scores[submission.Answers[i].QuestionID] = submission.Answers[i].Score
	}
	for i := range quiz.Questions {
		row = append(row, scoreCell(scores[quiz.Questions[i].ID]))
	}
	return row
}

func scoreCell(score *int) interface{} {
	if score == nil {
		return ""
	}
	return *score
}
