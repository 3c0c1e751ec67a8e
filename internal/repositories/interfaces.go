package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	CreatedBy  *uint  `json:"created_by"`
	ActiveOnly bool   `json:"active_only"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	SortBy     string `json:"sort_by"`    // "created_at", "title"
	SortOrder  string `json:"sort_order"` // "asc", "desc"
}

type SubmissionFilters struct {
	StudentID *uint  `json:"student_id"`
	Graded    *bool  `json:"graded"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "submitted_at", "total_score"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type ContentFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// ===== AGGREGATE REPOSITORY =====

// Repository groups the per-entity repositories over one connection.
// Inside WithTransaction the callback receives a Repository bound to the transaction.
type Repository interface {
	User() UserRepository
	Quiz() QuizRepository
	Submission() SubmissionRepository
	Content() ContentRepository
	NotificationLog() NotificationLogRepository

	WithTransaction(ctx context.Context, fn func(tx Repository) error) error

	// ResetAll deletes every row of every table
	ResetAll(ctx context.Context) error
}

// IsNotFoundError reports whether err means the requested row does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a unique constraint violation
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
