package serviceimpl

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/application/lifecycle"
	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type TaskServiceImpl struct {
	store repositories.Store
	perms services.PermissionService
	notifier
}

func NewTaskService(store repositories.Store, perms services.PermissionService, events ports.EventPublisherPort, cache ports.ProjectSummaryCachePort) services.TaskService {
	return &TaskServiceImpl{
		store:    store,
		perms:    perms,
		notifier: notifier{events: events, cache: cache},
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, actor *models.Actor, req *dto.CreateTaskRequest) (*models.Task, []string, error) {
	if err := s.perms.Check(actor, services.EntityTask, services.ActionCreate, nil); err != nil {
		logger.WarnContext(ctx, "Task create denied", "actor_id", actorID(actor))
		return nil, nil, err
	}

	task := &models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Details:     req.Details,
		OwnerID:     actor.ID,
	}
	if task.Title == "" {
		return nil, nil, apperror.Validation("Title is required")
	}
	if task.Status == "" {
		task.Status = models.TaskStatusOpen
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	var err error
	if task.StartDate, err = parseDateField("startDate", req.StartDate); err != nil {
		return nil, nil, err
	}
	if task.EndDate, err = parseDateField("endDate", req.EndDate); err != nil {
		return nil, nil, err
	}
	if req.ProjectID != nil && *req.ProjectID != "" {
		projectID, err := s.checkProjectReference(ctx, actor, *req.ProjectID)
		if err != nil {
			return nil, nil, err
		}
		task.ProjectID = &projectID
	}

	var result *lifecycle.TaskSaveResult
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		result, err = lifecycle.SaveTask(ctx, tx, task)
		return err
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "actor_id", actor.ID, "error", err)
		return nil, nil, err
	}

	logger.InfoContext(ctx, "Task created successfully", "task_id", task.ID, "actor_id", actor.ID, "sync", result.Sync.String())
	s.afterTaskSave(ctx, actor, result, nil)
	return result.Task, result.Warnings, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, actor *models.Actor, taskID uuid.UUID) (*models.Task, error) {
	if err := s.perms.Check(actor, services.EntityTask, services.ActionRead, nil); err != nil {
		return nil, err
	}

	task, err := s.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.perms.Check(actor, services.EntityTask, services.ActionRead, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, actor *models.Actor, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, []string, error) {
	if err := s.perms.Check(actor, services.EntityTask, services.ActionWrite, nil); err != nil {
		return nil, nil, err
	}

	task, err := s.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for update", "task_id", taskID)
		return nil, nil, err
	}
	if err := s.perms.Check(actor, services.EntityTask, services.ActionWrite, task); err != nil {
		logger.WarnContext(ctx, "Task update denied", "task_id", taskID, "actor_id", actor.ID)
		return nil, nil, err
	}

	var previousProject *uuid.UUID
	if task.ProjectID != nil {
		id := *task.ProjectID
		previousProject = &id
	}

	if err := s.applyUpdate(ctx, actor, task, req); err != nil {
		return nil, nil, err
	}

	var result *lifecycle.TaskSaveResult
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		result, err = lifecycle.SaveTask(ctx, tx, task)
		return err
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, nil, err
	}

	logger.InfoContext(ctx, "Task updated successfully", "task_id", taskID, "sync", result.Sync.String(), "warnings", len(result.Warnings))
	s.afterTaskSave(ctx, actor, result, previousProject)
	return result.Task, result.Warnings, nil
}

func (s *TaskServiceImpl) applyUpdate(ctx context.Context, actor *models.Actor, task *models.Task, req *dto.UpdateTaskRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return apperror.Validation("Title cannot be empty")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Details != nil {
		task.Details = *req.Details
	}
	if req.Status != nil {
		if *req.Status == "" {
			return apperror.Validation("Status cannot be empty")
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if *req.Priority == "" {
			return apperror.Validation("Priority cannot be empty")
		}
		task.Priority = *req.Priority
	}
	if req.StartDate != nil {
		d, err := parseDateField("startDate", *req.StartDate)
		if err != nil {
			return err
		}
		task.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDateField("endDate", *req.EndDate)
		if err != nil {
			return err
		}
		task.EndDate = d
	}
	if req.ProjectID != nil {
		if *req.ProjectID == "" {
			task.ProjectID = nil
		} else {
			projectID, err := s.checkProjectReference(ctx, actor, *req.ProjectID)
			if err != nil {
				return err
			}
			task.ProjectID = &projectID
		}
	}
	return nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, actor *models.Actor, taskID uuid.UUID) error {
	if err := s.perms.Check(actor, services.EntityTask, services.ActionDelete, nil); err != nil {
		return err
	}

	task, err := s.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for delete", "task_id", taskID)
		return err
	}
	if err := s.perms.Check(actor, services.EntityTask, services.ActionDelete, task); err != nil {
		return err
	}

	var affected []uuid.UUID
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		ids, err := tx.Projects().ListProjectIDsByTask(ctx, taskID)
		if err != nil {
			return err
		}
		affected = ids

		for _, projectID := range ids {
			project, err := tx.Projects().GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			for i := project.FindTaskLink(taskID); i >= 0; i = project.FindTaskLink(taskID) {
				project.RemoveTaskLinkAt(i)
			}
			if err := lifecycle.SaveProject(ctx, tx, project); err != nil {
				return err
			}
		}
		return tx.Tasks().Delete(ctx, taskID)
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Task deleted successfully", "task_id", taskID, "projects", len(affected))
	s.invalidate(ctx, affected...)
	s.publish(ctx, ports.EventTaskDeleted, actor, &taskID, task.ProjectID, "", nil)
	return nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, actor *models.Actor, req *dto.TaskFilterRequest) ([]*models.Task, int64, error) {
	if err := s.perms.Check(actor, services.EntityTask, services.ActionRead, nil); err != nil {
		return nil, 0, err
	}

	filter := repositories.TaskFilter{Status: req.Status}
	if req.Project != "" {
		projectID, err := uuid.Parse(req.Project)
		if err != nil {
			return nil, 0, apperror.Validation("Invalid project ID")
		}
		filter.ProjectID = &projectID
	}

	_, limit, offset := dto.Normalize(req.Page, req.Limit)
	tasks, total, err := s.store.Tasks().List(ctx, filter, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "error", err)
		return nil, 0, err
	}
	return tasks, total, nil
}

// checkProjectReference makes sure the referenced project exists and is readable.
func (s *TaskServiceImpl) checkProjectReference(ctx context.Context, actor *models.Actor, raw string) (uuid.UUID, error) {
	projectID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid project ID")
	}
	project, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return uuid.Nil, apperror.NotFound("Project does not exist")
		}
		return uuid.Nil, err
	}
	if err := s.perms.Check(actor, services.EntityProject, services.ActionRead, project); err != nil {
		return uuid.Nil, apperror.PermissionDenied("Not permitted to access this project")
	}
	return projectID, nil
}

func (s *TaskServiceImpl) afterTaskSave(ctx context.Context, actor *models.Actor, result *lifecycle.TaskSaveResult, previousProject *uuid.UUID) {
	task := result.Task

	touched, err := s.store.Projects().ListProjectIDsByTask(ctx, task.ID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to resolve projects for cache invalidation", "task_id", task.ID, "error", err)
	}
	if task.ProjectID != nil {
		touched = append(touched, *task.ProjectID)
	}
	if previousProject != nil {
		touched = append(touched, *previousProject)
	}
	s.invalidate(ctx, touched...)

	s.publish(ctx, ports.EventTaskSaved, actor, &task.ID, task.ProjectID, task.Status, result.Warnings)
	if result.Project != nil && result.Sync != lifecycle.SyncUnchanged {
		s.publish(ctx, ports.EventProjectSaved, actor, nil, &result.Project.ID, result.Project.Status, nil)
	}
}

func parseDateField(field, value string) (*time.Time, error) {
	d, err := utils.ParseDate(value)
	if err != nil {
		return nil, apperror.Validation("%s must be a date in YYYY-MM-DD format", field)
	}
	return d, nil
}

func actorID(actor *models.Actor) string {
	if actor == nil {
		return ""
	}
	return actor.ID.String()
}
