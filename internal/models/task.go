package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusWaiting    TaskStatus = "waiting"
	TaskStatusInProgress TaskStatus = "in progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusWaiting, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Description string     `gorm:"type:varchar(200);not null" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'waiting'" json:"status"`
	UserID      uint64     `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
