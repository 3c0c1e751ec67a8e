package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event published by the classroom service
type EventType string

const (
	EventQuizCreated       EventType = "quiz.created"
	EventQuizToggled       EventType = "quiz.toggled"
	EventSubmissionCreated EventType = "submission.created"
	EventSubmissionGraded  EventType = "submission.graded"
	EventDataReset         EventType = "data.reset"
)

const (
	eventSource  = "classroom-service"
	eventVersion = "1.0"
)

// Event is the envelope every domain event travels in
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type QuizCreatedEvent struct {
	QuizID        uint   `json:"quiz_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	TotalPoints   int    `json:"total_points"`
	CreatorID     uint   `json:"creator_id"`
}

type QuizToggledEvent struct {
	QuizID   uint `json:"quiz_id"`
	IsActive bool `json:"is_active"`
	ActorID  uint `json:"actor_id"`
}

type SubmissionCreatedEvent struct {
	SubmissionID uint      `json:"submission_id"`
	QuizID       uint      `json:"quiz_id"`
	QuizTitle    string    `json:"quiz_title"`
	StudentID    uint      `json:"student_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Graded       bool      `json:"graded"`
	TotalScore   *int      `json:"total_score,omitempty"`
	PendingCount int       `json:"pending_count"`
}

type SubmissionGradedEvent struct {
	SubmissionID uint      `json:"submission_id"`
	QuizID       uint      `json:"quiz_id"`
	QuizTitle    string    `json:"quiz_title"`
	StudentID    uint      `json:"student_id"`
	GraderID     uint      `json:"grader_id"`
	GradedAt     time.Time `json:"graded_at"`
	TotalScore   int       `json:"total_score"`
	MaxScore     int       `json:"max_score"`
}

type DataResetEvent struct {
	ActorID      uint      `json:"actor_id"`
	ResetAt      time.Time `json:"reset_at"`
	FilesRemoved int       `json:"files_removed"`
}

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewQuizCreatedEvent(data QuizCreatedEvent) *Event {
	return newEvent(EventQuizCreated, data)
}

func NewQuizToggledEvent(data QuizToggledEvent) *Event {
	return newEvent(EventQuizToggled, data)
}

func NewSubmissionCreatedEvent(data SubmissionCreatedEvent) *Event {
	return newEvent(EventSubmissionCreated, data)
}

func NewSubmissionGradedEvent(data SubmissionGradedEvent) *Event {
	return newEvent(EventSubmissionGraded, data)
}

func NewDataResetEvent(data DataResetEvent) *Event {
	return newEvent(EventDataReset, data)
}
