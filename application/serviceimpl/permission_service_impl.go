package serviceimpl

import (
	"taskboard/domain/models"
	"taskboard/domain/services"
	"taskboard/pkg/apperror"
)

type grant struct {
	allowed bool
	ownOnly bool // record-level: only records the actor owns
}

type roleMatrix map[services.Entity]map[services.Action]grant

var fullAccess = map[services.Action]grant{
	services.ActionCreate: {allowed: true},
	services.ActionRead:   {allowed: true},
	services.ActionWrite:  {allowed: true},
	services.ActionDelete: {allowed: true},
}

var defaultMatrix = map[string]roleMatrix{
	models.RoleAdmin: {
		services.EntityTask:    fullAccess,
		services.EntityProject: fullAccess,
	},
	models.RoleTaskManager: {
		services.EntityTask:    fullAccess,
		services.EntityProject: fullAccess,
	},
	models.RoleTaskUser: {
		services.EntityTask: {
			services.ActionCreate: {allowed: true},
			services.ActionRead:   {allowed: true},
			services.ActionWrite:  {allowed: true, ownOnly: true},
			services.ActionDelete: {allowed: true, ownOnly: true},
		},
		services.EntityProject: {
			services.ActionCreate: {allowed: true},
			services.ActionRead:   {allowed: true},
			services.ActionWrite:  {allowed: true, ownOnly: true},
			services.ActionDelete: {allowed: true, ownOnly: true},
		},
	},
}

type PermissionServiceImpl struct {
	matrix map[string]roleMatrix
}

func NewPermissionService() services.PermissionService {
	return &PermissionServiceImpl{matrix: defaultMatrix}
}

func (s *PermissionServiceImpl) Check(actor *models.Actor, entity services.Entity, action services.Action, record models.Owned) error {
	if actor == nil {
		return apperror.PermissionDenied("Not permitted to %s %s", action, entity)
	}

	g := s.matrix[actor.Role][entity][action]
	if !g.allowed {
		return apperror.PermissionDenied("Not permitted to %s %s", action, entity)
	}
	if record != nil && g.ownOnly && record.GetOwnerID() != actor.ID {
		return apperror.PermissionDenied("Not permitted to %s this %s", action, entity)
	}
	return nil
}
