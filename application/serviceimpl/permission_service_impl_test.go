package serviceimpl

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/domain/services"
	"taskboard/pkg/apperror"
)

func TestPermissionService_Check(t *testing.T) {
	perms := NewPermissionService()
	owner := &models.Actor{ID: uuid.New(), Role: models.RoleTaskUser}
	stranger := &models.Actor{ID: uuid.New(), Role: models.RoleTaskUser}
	admin := &models.Actor{ID: uuid.New(), Role: models.RoleAdmin}
	owned := &models.Task{OwnerID: owner.ID}

	cases := []struct {
		name   string
		actor  *models.Actor
		entity services.Entity
		action services.Action
		record models.Owned
		allow  bool
	}{
		{"user creates task", owner, services.EntityTask, services.ActionCreate, nil, true},
		{"user reads foreign task", stranger, services.EntityTask, services.ActionRead, owned, true},
		{"user writes own task", owner, services.EntityTask, services.ActionWrite, owned, true},
		{"user writes foreign task", stranger, services.EntityTask, services.ActionWrite, owned, false},
		{"user deletes foreign project", stranger, services.EntityProject, services.ActionDelete, &models.Project{OwnerID: owner.ID}, false},
		{"admin deletes any project", admin, services.EntityProject, services.ActionDelete, &models.Project{OwnerID: owner.ID}, true},
		{"unknown role", &models.Actor{ID: uuid.New(), Role: "guest"}, services.EntityTask, services.ActionRead, nil, false},
		{"no actor", nil, services.EntityTask, services.ActionRead, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := perms.Check(tc.actor, tc.entity, tc.action, tc.record)
			if tc.allow && err != nil {
				t.Errorf("Expected allowed, got %v", err)
			}
			if !tc.allow && !errors.Is(err, apperror.ErrPermissionDenied) {
				t.Errorf("Expected permission denied, got %v", err)
			}
		})
	}
}
