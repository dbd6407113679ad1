package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=5000"`
	Status      string  `json:"status" validate:"omitempty,oneof='Open' 'In Progress' 'Completed' 'On Hold' 'Cancelled'"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	StartDate   string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Details     string  `json:"details" validate:"omitempty,max=20000"`
	ProjectID   *string `json:"projectId" validate:"omitempty,uuid"`
}

// UpdateTaskRequest is a partial update: nil leaves the field untouched,
// an empty string clears it.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Status      *string `json:"status" validate:"omitempty,oneof='Open' 'In Progress' 'Completed' 'On Hold' 'Cancelled'"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	StartDate   *string `json:"startDate" validate:"omitempty,eq=|datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,eq=|datetime=2006-01-02"`
	Details     *string `json:"details" validate:"omitempty,max=20000"`
	ProjectID   *string `json:"projectId" validate:"omitempty,eq=|uuid"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *string    `json:"startDate"`
	EndDate     *string    `json:"endDate"`
	Details     string     `json:"details"`
	ProjectID   *uuid.UUID `json:"projectId"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskSummaryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	Priority  string     `json:"priority"`
	StartDate *string    `json:"startDate"`
	EndDate   *string    `json:"endDate"`
	ProjectID *uuid.UUID `json:"projectId"`
}

type TaskFilterRequest struct {
	Status  string `query:"status" validate:"omitempty,oneof='Open' 'In Progress' 'Completed' 'On Hold' 'Cancelled'"`
	Project string `query:"project" validate:"omitempty,uuid"`
	Page    int    `query:"page" validate:"omitempty,min=1,max=100000"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
