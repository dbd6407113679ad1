package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Status      string   `json:"status" validate:"omitempty,oneof='Planning' 'Active' 'Completed' 'On Hold' 'Cancelled'"`
	StartDate   string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Tasks       []string `json:"tasks" validate:"omitempty,dive,uuid"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Status      *string `json:"status" validate:"omitempty,oneof='Planning' 'Active' 'Completed' 'On Hold' 'Cancelled'"`
	StartDate   *string `json:"startDate" validate:"omitempty,eq=|datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,eq=|datetime=2006-01-02"`
}

type LinkTaskRequest struct {
	Task string `json:"task" validate:"required,uuid"`
}

const (
	LinkStatusSuccess = "success"
	LinkStatusInfo    = "info"
)

// LinkResult reports the outcome of linking or unlinking a task.
// Info means nothing was changed.
type LinkResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ProjectTaskResponse struct {
	ID        uuid.UUID `json:"id"`
	Idx       int       `json:"idx"`
	TaskID    uuid.UUID `json:"taskId"`
	TaskTitle string    `json:"taskTitle"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	StartDate *string   `json:"startDate"`
	EndDate   *string   `json:"endDate"`
}

type ProjectResponse struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Slug        string                `json:"slug"`
	Description string                `json:"description"`
	Status      string                `json:"status"`
	StartDate   *string               `json:"startDate"`
	EndDate     *string               `json:"endDate"`
	OwnerID     uuid.UUID             `json:"ownerId"`
	Tasks       []ProjectTaskResponse `json:"tasks"`
	TaskCount   int                   `json:"taskCount"`
	Progress    float64               `json:"progress"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

type ProjectSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	StartDate *string   `json:"startDate"`
	EndDate   *string   `json:"endDate"`
	OwnerID   uuid.UUID `json:"ownerId"`
	TaskCount int       `json:"taskCount"`
	Progress  float64   `json:"progress"`
}

type ProjectFilterRequest struct {
	Status string `query:"status" validate:"omitempty,oneof='Planning' 'Active' 'Completed' 'On Hold' 'Cancelled'"`
	Page   int    `query:"page" validate:"omitempty,min=1,max=100000"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
