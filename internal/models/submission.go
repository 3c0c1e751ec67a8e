package models

import (
	"time"
)

type Submission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	QuizID      uint      `json:"quiz_id" gorm:"not null;index"`
	StudentID   uint      `json:"student_id" gorm:"not null;index"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index"`
	TotalScore  *int      `json:"total_score"`
	Graded      bool      `json:"graded" gorm:"not null;default:false"`

	// Relations
	Quiz    *Quiz    `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
}

func (Submission) TableName() string {
	return "quiz_submissions"
}

// RefreshGrading recomputes Graded and TotalScore from the answers.
// Graded holds only when every answer carries a score.
func (s *Submission) RefreshGrading() {
	total := 0
	for _, answer := range s.Answers {
		if answer.Score == nil {
			s.Graded = false
			s.TotalScore = nil
			return
		}
		total += *answer.Score
	}
	s.Graded = true
	s.TotalScore = &total
}

type Answer struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	SubmissionID uint    `json:"submission_id" gorm:"not null;index"`
	QuestionID   uint    `json:"question_id" gorm:"not null;index"`
	AnswerText   *string `json:"answer_text" gorm:"type:text"`
	FileRef      *string `json:"file_ref" gorm:"size:500"`
	IsCorrect    *bool   `json:"is_correct"`
	Score        *int    `json:"score"`

	Question *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Answer) TableName() string {
	return "quiz_answers"
}

// IsPending reports whether the answer still waits for a score
func (a *Answer) IsPending() bool {
	return a.Score == nil
}
