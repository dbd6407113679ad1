package services

import "taskboard/domain/models"

type Entity string

const (
	EntityTask    Entity = "Task"
	EntityProject Entity = "Project"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// PermissionService checks the capability on the entity type and, when
// record is non-nil, on that specific record.
type PermissionService interface {
	Check(actor *models.Actor, entity Entity, action Action, record models.Owned) error
}
