package validator

import (
	"testing"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type signupRequest struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,user_role"`
}

type questionRequest struct {
	Type string `json:"type" validate:"required,question_type"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		input      interface{}
		wantFields []string
	}{
		{
			name:  "valid signup",
			input: &signupRequest{Name: "Ana", Email: "ana@example.com", Role: "student"},
		},
		{
			name:       "blank name and unknown role",
			input:      &signupRequest{Name: "   ", Email: "ana@example.com", Role: "admin"},
			wantFields: []string{"name", "role"},
		},
		{
			name:       "bad email",
			input:      &signupRequest{Name: "Ana", Email: "ana", Role: "teacher"},
			wantFields: []string{"email"},
		},
		{
			name:  "valid question type",
			input: &questionRequest{Type: "file"},
		},
		{
			name:       "invalid question type",
			input:      &questionRequest{Type: "essay"},
			wantFields: []string{"type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)

			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestQuizValidator_ValidateQuestion(t *testing.T) {
	v := NewQuizValidator()

	tests := []struct {
		name        string
		question    models.Question
		wantFields  []string
		wantOptions []string
		wantCorrect string
		wantPoints  int
	}{
		{
			name: "valid multiple choice is normalized",
			question: models.Question{
				Text:          " Pick one ",
				Type:          models.QuestionMultipleChoice,
				Options:       []string{" A ", "", "B", "  "},
				CorrectOption: strPtr(" B"),
				Points:        2,
			},
			wantOptions: []string{"A", "B"},
			wantCorrect: "B",
			wantPoints:  2,
		},
		{
			name: "correct option not among options",
			question: models.Question{
				Text:          "Pick one",
				Type:          models.QuestionMultipleChoice,
				Options:       []string{"A", "B", "C"},
				CorrectOption: strPtr("D"),
				Points:        1,
			},
			wantFields: []string{"questions[0].correct_option"},
		},
		{
			name: "multiple choice without options",
			question: models.Question{
				Text:          "Pick one",
				Type:          models.QuestionMultipleChoice,
				Options:       []string{" ", ""},
				CorrectOption: strPtr("A"),
			},
			wantFields: []string{"questions[0].options"},
		},
		{
			name: "multiple choice without correct option",
			question: models.Question{
				Text:    "Pick one",
				Type:    models.QuestionMultipleChoice,
				Options: []string{"A"},
			},
			wantFields: []string{"questions[0].correct_option"},
		},
		{
			name: "free text drops options and defaults points",
			question: models.Question{
				Text:          "Explain",
				Type:          models.QuestionFreeText,
				Options:       []string{"ignored"},
				CorrectOption: strPtr("ignored"),
				Points:        -4,
			},
			wantPoints: 1,
		},
		{
			name:       "unknown type and empty text",
			question:   models.Question{Text: " ", Type: "essay", Points: 1},
			wantFields: []string{"questions[0].text", "questions[0].type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.question
			errs := v.ValidateQuestion(0, &q)

			if len(tt.wantFields) > 0 {
				fields := make([]string, 0, len(errs))
				for _, e := range errs {
					fields = append(fields, e.Field)
				}
				assert.Equal(t, tt.wantFields, fields)
				return
			}

			assert.Empty(t, errs)
			assert.Equal(t, tt.wantPoints, q.Points)
			if tt.wantOptions != nil {
				assert.Equal(t, tt.wantOptions, []string(q.Options))
				assert.Equal(t, tt.wantCorrect, q.Correct())
			} else {
				assert.Nil(t, q.Options)
				assert.Nil(t, q.CorrectOption)
			}
		})
	}
}

func TestQuizValidator_ValidateQuestions(t *testing.T) {
	v := NewQuizValidator()

	err := v.ValidateQuestions(nil)
	require.Error(t, err)

	questions := []models.Question{
		{Text: "First", Type: models.QuestionFreeText, Points: 3},
		{Text: "Second", Type: models.QuestionMultipleChoice, Options: []string{"A"}, CorrectOption: strPtr("A")},
	}
	require.NoError(t, v.ValidateQuestions(questions))
	assert.Equal(t, 0, questions[0].Position)
	assert.Equal(t, 1, questions[1].Position)
	assert.Equal(t, 1, questions[1].Points)

	questions = append(questions, models.Question{Text: "Third", Type: models.QuestionMultipleChoice, Options: []string{"A"}, CorrectOption: strPtr("B")})
	err = v.ValidateQuestions(questions)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "questions[2].correct_option", errs[0].Field)
}

func TestQuizValidator_NormalizePoints(t *testing.T) {
	v := NewQuizValidator()
	zero, five, negative := 0, 5, -1

	assert.Equal(t, 1, v.NormalizePoints(nil))
	assert.Equal(t, 1, v.NormalizePoints(&zero))
	assert.Equal(t, 1, v.NormalizePoints(&negative))
	assert.Equal(t, 5, v.NormalizePoints(&five))
}
