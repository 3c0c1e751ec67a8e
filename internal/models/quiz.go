package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "mcq"
	QuestionFreeText       QuestionType = "text"
	QuestionFileUpload     QuestionType = "file"
)

// IsValid reports whether t is a supported question type
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionFreeText, QuestionFileUpload:
		return true
	}
	return false
}

// IsManuallyGraded reports whether answers of this type wait for a teacher's score
func (t QuestionType) IsManuallyGraded() bool {
	return t == QuestionFreeText || t == QuestionFileUpload
}

const DefaultQuestionPoints = 1

type Quiz struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description *string   `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true;index"`
	CreatedByID uint      `json:"created_by_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	// Relations
	Creator   *User      `json:"creator,omitempty" gorm:"foreignKey:CreatedByID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// TotalPoints sums the points of all loaded questions
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	QuizID        uint                        `json:"quiz_id" gorm:"not null;index"`
	Position      int                         `json:"position" gorm:"not null;default:0"`
	Text          string                      `json:"text" gorm:"type:text;not null"`
	Type          QuestionType                `json:"type" gorm:"not null;size:20"`
	Options       datatypes.JSONSlice[string] `json:"options,omitempty"`
	CorrectOption *string                     `json:"correct_option,omitempty" gorm:"type:text"`
	Points        int                         `json:"points" gorm:"not null;default:1"`
}

func (Question) TableName() string {
	return "quiz_questions"
}

// Correct returns the stored correct option, empty for non multiple-choice questions
func (q *Question) Correct() string {
	if q.CorrectOption == nil {
		return ""
	}
	return *q.CorrectOption
}
