package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestSubmission_RefreshGrading(t *testing.T) {
	tests := []struct {
		name       string
		answers    []Answer
		wantGraded bool
		wantTotal  *int
	}{
		{
			name:       "all scored",
			answers:    []Answer{{Score: intPtr(2)}, {Score: intPtr(0)}, {Score: intPtr(3)}},
			wantGraded: true,
			wantTotal:  intPtr(5),
		},
		{
			name:       "one pending",
			answers:    []Answer{{Score: intPtr(2)}, {Score: nil}},
			wantGraded: false,
			wantTotal:  nil,
		},
		{
			name:       "no answers",
			answers:    nil,
			wantGraded: true,
			wantTotal:  intPtr(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Submission{Answers: tt.answers}
			s.RefreshGrading()
			assert.Equal(t, tt.wantGraded, s.Graded)
			assert.Equal(t, tt.wantTotal, s.TotalScore)
		})
	}
}

func TestUser_Predicates(t *testing.T) {
	teacher := &User{ID: 1, Role: RoleTeacher}
	other := &User{ID: 2, Role: RoleTeacher}
	student := &User{ID: 3, Role: RoleStudent}
	quiz := &Quiz{ID: 10, CreatedByID: 1}

	assert.True(t, teacher.IsTeacher())
	assert.False(t, student.IsTeacher())
	assert.True(t, student.IsStudent())

	assert.True(t, teacher.CanManageQuiz(quiz))
	assert.False(t, other.CanManageQuiz(quiz))
	assert.False(t, student.CanManageQuiz(&Quiz{CreatedByID: 3}))

	var nobody *User
	assert.False(t, nobody.IsTeacher())
}

func TestQuestionType(t *testing.T) {
	assert.True(t, QuestionMultipleChoice.IsValid())
	assert.True(t, QuestionFileUpload.IsValid())
	assert.False(t, QuestionType("essay").IsValid())

	assert.False(t, QuestionMultipleChoice.IsManuallyGraded())
	assert.True(t, QuestionFreeText.IsManuallyGraded())
	assert.True(t, QuestionFileUpload.IsManuallyGraded())
}

func TestQuiz_TotalPoints(t *testing.T) {
	quiz := &Quiz{Questions: []Question{{Points: 2}, {Points: 3}}}
	assert.Equal(t, 5, quiz.TotalPoints())
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, RoleTeacher.IsValid())
	assert.True(t, RoleStudent.IsValid())
	assert.False(t, UserRole("admin").IsValid())
}
