package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// IsValid reports whether r is one of the known roles
func (r UserRole) IsValid() bool {
	return r == RoleStudent || r == RoleTeacher
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;size:120"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index"`

	// Parent contacts, students only
	ParentEmail    *string `json:"parent_email,omitempty" gorm:"size:255"`
	ParentWhatsApp *string `json:"parent_whatsapp,omitempty" gorm:"size:50"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsTeacher() bool {
	return u != nil && u.Role == RoleTeacher
}

func (u *User) IsStudent() bool {
	return u != nil && u.Role == RoleStudent
}

// CanManageQuiz reports whether the user owns the quiz as a teacher
func (u *User) CanManageQuiz(quiz *Quiz) bool {
	return u.IsTeacher() && quiz != nil && quiz.CreatedByID == u.ID
}
