package models

import "github.com/google/uuid"

// Roles, seeded by cmd/setup-roles.
const (
	RoleAdmin       = "admin"
	RoleTaskManager = "task_manager"
	RoleTaskUser    = "task_user"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// Owned is implemented by records that carry an owner for record-level permission checks.
type Owned interface {
	GetOwnerID() uuid.UUID
}
