package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusOpen       = "Open"
	TaskStatusInProgress = "In Progress"
	TaskStatusOnHold     = "On Hold"
	TaskStatusCompleted  = "Completed"
	TaskStatusCancelled  = "Cancelled"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Description string
	Status      string     `gorm:"default:'Open';index"`
	Priority    string     `gorm:"default:'Medium'"`
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	Details     string
	ProjectID   *uuid.UUID `gorm:"type:uuid;index"` // back-reference, kept consistent by the synchronizer
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) HasProject() bool {
	return t.ProjectID != nil && *t.ProjectID != uuid.Nil
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

func (t *Task) GetOwnerID() uuid.UUID {
	return t.OwnerID
}

// Clone returns a deep copy; pointer fields are not shared.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.StartDate = cloneTime(t.StartDate)
	c.EndDate = cloneTime(t.EndDate)
	if t.ProjectID != nil {
		id := *t.ProjectID
		c.ProjectID = &id
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// SameDate compares two optional calendar dates; two unset dates are equal.
func SameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
