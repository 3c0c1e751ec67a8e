package models

import (
	"time"
)

type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelWhatsApp NotificationChannel = "whatsapp"
)

// NotificationLog records a single delivery attempt to a parent contact
type NotificationLog struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	SubmissionID uint                `json:"submission_id" gorm:"not null;index"`
	Channel      NotificationChannel `json:"channel" gorm:"not null;size:20"`
	Recipient    string              `json:"recipient" gorm:"not null;size:255"`
	Subject      string              `json:"subject" gorm:"size:255"`
	Body         string              `json:"body" gorm:"type:text"`
	Delivered    bool                `json:"delivered" gorm:"not null;default:false"`
	CreatedAt    time.Time           `json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

// AllModels lists every persisted model, in creation order for migrations
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Lesson{},
		&Announcement{},
		&Quiz{},
		&Question{},
		&Submission{},
		&Answer{},
		&NotificationLog{},
	}
}
