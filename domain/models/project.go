package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProjectStatusPlanning  = "Planning"
	ProjectStatusActive    = "Active"
	ProjectStatusOnHold    = "On Hold"
	ProjectStatusCompleted = "Completed"
	ProjectStatusCancelled = "Cancelled"
)

type Project struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Description string
	Status      string        `gorm:"default:'Planning';index"`
	StartDate   *time.Time    `gorm:"type:date"`
	EndDate     *time.Time    `gorm:"type:date"`
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	Tasks       []ProjectTask `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Project) TableName() string {
	return "projects"
}

// ProjectTask is a link row embedded in a project. The task fields are a
// display cache refreshed from the task whenever the row is saved.
type ProjectTask struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Idx       int       `gorm:"not null"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TaskTitle string
	Status    string
	Priority  string
	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`
}

func (ProjectTask) TableName() string {
	return "project_tasks"
}

func (p *Project) GetOwnerID() uuid.UUID {
	return p.OwnerID
}

// FindTaskLink returns the index of the first row referencing taskID, or -1.
func (p *Project) FindTaskLink(taskID uuid.UUID) int {
	for i := range p.Tasks {
		if p.Tasks[i].TaskID == taskID {
			return i
		}
	}
	return -1
}

func (p *Project) HasTask(taskID uuid.UUID) bool {
	return p.FindTaskLink(taskID) >= 0
}

// AppendTask adds a link row populated from task's current values.
func (p *Project) AppendTask(task *Task) *ProjectTask {
	link := ProjectTask{
		ID:        uuid.New(),
		ProjectID: p.ID,
		Idx:       len(p.Tasks) + 1,
		TaskID:    task.ID,
	}
	link.CopyFrom(task)
	p.Tasks = append(p.Tasks, link)
	return &p.Tasks[len(p.Tasks)-1]
}

// RemoveTaskLinkAt drops the row at i, keeping the order of the rest.
func (p *Project) RemoveTaskLinkAt(i int) {
	p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
}

// CopyFrom overwrites the cached display fields with task's values.
func (l *ProjectTask) CopyFrom(task *Task) {
	l.TaskTitle = task.Title
	l.Status = task.Status
	l.Priority = task.Priority
	l.StartDate = cloneTime(task.StartDate)
	l.EndDate = cloneTime(task.EndDate)
}

func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.StartDate = cloneTime(p.StartDate)
	c.EndDate = cloneTime(p.EndDate)
	c.Tasks = make([]ProjectTask, len(p.Tasks))
	for i, link := range p.Tasks {
		link.StartDate = cloneTime(link.StartDate)
		link.EndDate = cloneTime(link.EndDate)
		c.Tasks[i] = link
	}
	return &c
}
