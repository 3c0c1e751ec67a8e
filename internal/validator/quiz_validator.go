package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/classroom-service/internal/models"
)

// QuizValidator normalizes and checks authored questions
type QuizValidator struct{}

// NewQuizValidator creates a new quiz validator
func NewQuizValidator() *QuizValidator {
	return &QuizValidator{}
}

// NormalizePoints applies the default when points are absent or not positive
func (v *QuizValidator) NormalizePoints(points *int) int {
	if points == nil || *points < 1 {
		return models.DefaultQuestionPoints
	}
	return *points
}

// NormalizeOptions trims every option and drops the blank ones
func (v *QuizValidator) NormalizeOptions(options []string) []string {
	normalized := make([]string, 0, len(options))
	for _, option := range options {
		if trimmed := strings.TrimSpace(option); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}

// ValidateQuestion normalizes question in place and returns the rule violations.
// index is the question position and only shapes the reported field names.
func (v *QuizValidator) ValidateQuestion(index int, question *models.Question) ValidationErrors {
	var errs ValidationErrors
	field := func(name string) string {
		return fmt.Sprintf("questions[%d].%s", index, name)
	}

	question.Text = strings.TrimSpace(question.Text)
	if question.Text == "" {
		errs.Add(field("text"), "is required", nil)
	}

	if question.Points < 1 {
		question.Points = models.DefaultQuestionPoints
	}

	switch question.Type {
	case models.QuestionMultipleChoice:
		question.Options = v.NormalizeOptions(question.Options)
		if len(question.Options) == 0 {
			errs.Add(field("options"), "must contain at least one option", nil)
			break
		}

		correct := strings.TrimSpace(question.Correct())
		if correct == "" {
			errs.Add(field("correct_option"), "is required", nil)
			break
		}
		if !containsOption(question.Options, correct) {
			errs.Add(field("correct_option"), "must be one of the listed options", correct)
			break
		}
		question.CorrectOption = &correct

	case models.QuestionFreeText, models.QuestionFileUpload:
		question.Options = nil
		question.CorrectOption = nil

	default:
		errs.Add(field("type"), "must be a valid question type (mcq, text, file)", question.Type)
	}

	return errs
}

// ValidateQuestions checks an ordered list of questions and assigns positions
func (v *QuizValidator) ValidateQuestions(questions []models.Question) error {
	var errs ValidationErrors
	if len(questions) == 0 {
		errs.Add("questions", "must contain at least one question", nil)
		return errs
	}

	for i := range questions {
		questions[i].Position = i
		errs = append(errs, v.ValidateQuestion(i, &questions[i])...)
	}

	return errs.OrNil()
}

func containsOption(options []string, candidate string) bool {
	for _, option := range options {
		if option == candidate {
			return true
		}
	}
	return false
}
