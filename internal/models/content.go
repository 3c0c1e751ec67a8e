package models

import "time"

type Lesson struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description *string   `json:"description" gorm:"type:text"`
	FileRef     *string   `json:"file_ref" gorm:"size:500"`
	CreatedByID uint      `json:"created_by_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type Announcement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedByID uint      `json:"created_by_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Announcement) TableName() string {
	return "announcements"
}
