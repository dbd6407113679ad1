package serviceimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

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

const (
	msgTaskAdded         = "Task added to project successfully"
	msgTaskAlreadyLinked = "Task is already part of the project"
	msgTaskRemoved       = "Task removed from project successfully"
	msgTaskNotInProject  = "Task is not part of the project"
	maxSlugAttempts      = 50
)

type ProjectServiceImpl struct {
	store repositories.Store
	perms services.PermissionService
	notifier
}

func NewProjectService(store repositories.Store, perms services.PermissionService, events ports.EventPublisherPort, cache ports.ProjectSummaryCachePort) services.ProjectService {
	return &ProjectServiceImpl{
		store:    store,
		perms:    perms,
		notifier: notifier{events: events, cache: cache},
	}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, actor *models.Actor, req *dto.CreateProjectRequest) (*models.Project, error) {
	if err := s.perms.Check(actor, services.EntityProject, services.ActionCreate, nil); err != nil {
		logger.WarnContext(ctx, "Project create denied", "actor_id", actorID(actor))
		return nil, err
	}

	project := &models.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		OwnerID:     actor.ID,
	}
	if project.Title == "" {
		return nil, apperror.Validation("Title is required")
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPlanning
	}

	var err error
	if project.StartDate, err = parseDateField("startDate", req.StartDate); err != nil {
		return nil, err
	}
	if project.EndDate, err = parseDateField("endDate", req.EndDate); err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		projectSlug, err := uniqueSlug(ctx, tx.Projects(), project.Title)
		if err != nil {
			return err
		}
		project.Slug = projectSlug
		if err := appendRequestedTasks(ctx, tx, project, req.Tasks); err != nil {
			return err
		}
		return lifecycle.SaveProject(ctx, tx, project)
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create project", "actor_id", actor.ID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Project created successfully", "project_id", project.ID, "slug", project.Slug, "tasks", len(project.Tasks))
	s.publish(ctx, ports.EventProjectSaved, actor, nil, &project.ID, project.Status, nil)
	return project, nil
}

// appendRequestedTasks links the requested tasks, silently dropping ids that
// are malformed, duplicated or do not exist.
func appendRequestedTasks(ctx context.Context, tx repositories.Store, project *models.Project, raw []string) error {
	if len(raw) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	tasks, err := tx.Tasks().GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	for _, id := range ids {
		t, ok := byID[id]
		if !ok || project.HasTask(id) {
			continue
		}
		project.AppendTask(t)
	}
	return nil
}

func uniqueSlug(ctx context.Context, projects repositories.ProjectRepository, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "project"
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		exists, err := projects.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, actor *models.Actor, projectID uuid.UUID) (*models.Project, error) {
	if err := s.perms.Check(actor, services.EntityProject, services.ActionRead, nil); err != nil {
		return nil, err
	}

	project, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.perms.Check(actor, services.EntityProject, services.ActionRead, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, actor *models.Actor, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	if err := s.perms.Check(actor, services.EntityProject, services.ActionWrite, nil); err != nil {
		return nil, err
	}

	var project *models.Project
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		project, err = tx.Projects().GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := s.perms.Check(actor, services.EntityProject, services.ActionWrite, project); err != nil {
			logger.WarnContext(ctx, "Project update denied", "project_id", projectID, "actor_id", actor.ID)
			return err
		}
		if err := applyProjectUpdate(project, req); err != nil {
			return err
		}
		return lifecycle.SaveProject(ctx, tx, project)
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update project", "project_id", projectID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Project updated successfully", "project_id", projectID, "status", project.Status)
	s.invalidate(ctx, projectID)
	s.publish(ctx, ports.EventProjectSaved, actor, nil, &projectID, project.Status, nil)
	return project, nil
}

func applyProjectUpdate(project *models.Project, req *dto.UpdateProjectRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return apperror.Validation("Title cannot be empty")
		}
		project.Title = title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		if *req.Status == "" {
			return apperror.Validation("Status cannot be empty")
		}
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		d, err := parseDateField("startDate", *req.StartDate)
		if err != nil {
			return err
		}
		project.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDateField("endDate", *req.EndDate)
		if err != nil {
			return err
		}
		project.EndDate = d
	}
	return nil
}

// DeleteProject removes the project and its rows. Linked tasks survive with
// their back-reference cleared.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, actor *models.Actor, projectID uuid.UUID) error {
	if err := s.perms.Check(actor, services.EntityProject, services.ActionDelete, nil); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		project, err := tx.Projects().GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := s.perms.Check(actor, services.EntityProject, services.ActionDelete, project); err != nil {
			return err
		}
		if err := tx.Tasks().ClearProject(ctx, projectID); err != nil {
			return err
		}
		return tx.Projects().Delete(ctx, projectID)
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete project", "project_id", projectID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Project deleted successfully", "project_id", projectID)
	s.invalidate(ctx, projectID)
	s.publish(ctx, ports.EventProjectDeleted, actor, nil, &projectID, "", nil)
	return nil
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, actor *models.Actor, req *dto.ProjectFilterRequest) ([]*dto.ProjectSummaryResponse, int64, error) {
	if err := s.perms.Check(actor, services.EntityProject, services.ActionRead, nil); err != nil {
		return nil, 0, err
	}

	_, limit, offset := dto.Normalize(req.Page, req.Limit)
	projects, total, err := s.store.Projects().List(ctx, repositories.ProjectFilter{Status: req.Status}, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list projects", "error", err)
		return nil, 0, err
	}

	summaries := make([]*dto.ProjectSummaryResponse, 0, len(projects))
	for _, project := range projects {
		summary, err := s.summarize(ctx, project)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, total, nil
}

// summarize computes progress from the current task statuses, not the cached
// rows, and memoizes the result in the summary cache.
func (s *ProjectServiceImpl) summarize(ctx context.Context, project *models.Project) (*dto.ProjectSummaryResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, project.ID.String())
		if err != nil {
			logger.WarnContext(ctx, "Project summary cache read failed", "project_id", project.ID, "error", err)
		} else if cached != nil {
			return summaryFromCache(project, cached), nil
		}
	}

	completed := 0
	if len(project.Tasks) > 0 {
		ids := make([]uuid.UUID, 0, len(project.Tasks))
		for _, link := range project.Tasks {
			ids = append(ids, link.TaskID)
		}
		tasks, err := s.store.Tasks().GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		status := make(map[uuid.UUID]string, len(tasks))
		for _, t := range tasks {
			status[t.ID] = t.Status
		}
		for _, link := range project.Tasks {
			if status[link.TaskID] == models.TaskStatusCompleted {
				completed++
			}
		}
	}

	summary := &dto.ProjectSummaryResponse{
		ID:        project.ID,
		Title:     project.Title,
		Slug:      project.Slug,
		Status:    project.Status,
		StartDate: utils.FormatDate(project.StartDate),
		EndDate:   utils.FormatDate(project.EndDate),
		OwnerID:   project.OwnerID,
		TaskCount: len(project.Tasks),
		Progress:  dto.Progress(completed, len(project.Tasks)),
	}

	if s.cache != nil {
		err := s.cache.Set(ctx, &ports.ProjectSummaryData{
			ID:        project.ID.String(),
			Title:     project.Title,
			Slug:      project.Slug,
			Status:    project.Status,
			StartDate: project.StartDate,
			EndDate:   project.EndDate,
			OwnerID:   project.OwnerID.String(),
			TaskCount: summary.TaskCount,
			Completed: completed,
			Progress:  summary.Progress,
		})
		if err != nil {
			logger.WarnContext(ctx, "Project summary cache write failed", "project_id", project.ID, "error", err)
		}
	}
	return summary, nil
}

func summaryFromCache(project *models.Project, cached *ports.ProjectSummaryData) *dto.ProjectSummaryResponse {
	return &dto.ProjectSummaryResponse{
		ID:        project.ID,
		Title:     cached.Title,
		Slug:      cached.Slug,
		Status:    cached.Status,
		StartDate: utils.FormatDate(cached.StartDate),
		EndDate:   utils.FormatDate(cached.EndDate),
		OwnerID:   project.OwnerID,
		TaskCount: cached.TaskCount,
		Progress:  cached.Progress,
	}
}

func (s *ProjectServiceImpl) ListProjectTasks(ctx context.Context, actor *models.Actor, projectID uuid.UUID) ([]models.ProjectTask, error) {
	project, err := s.GetProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	return project.Tasks, nil
}

func (s *ProjectServiceImpl) AddTaskToProject(ctx context.Context, actor *models.Actor, projectID, taskID uuid.UUID) (*dto.LinkResult, error) {
	if err := s.perms.Check(actor, services.EntityProject, services.ActionWrite, nil); err != nil {
		return nil, err
	}
	if err := s.perms.Check(actor, services.EntityTask, services.ActionWrite, nil); err != nil {
		return nil, err
	}

	var result *dto.LinkResult
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		project, err := tx.Projects().GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := s.perms.Check(actor, services.EntityProject, services.ActionWrite, project); err != nil {
			return err
		}
		task, err := tx.Tasks().GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		// linking rewrites the task's back-reference
		if err := s.perms.Check(actor, services.EntityTask, services.ActionWrite, task); err != nil {
			return err
		}

		if project.HasTask(taskID) {
			result = &dto.LinkResult{Status: dto.LinkStatusInfo, Message: msgTaskAlreadyLinked}
			return nil
		}

		project.AppendTask(task)
		if err := lifecycle.SaveProject(ctx, tx, project); err != nil {
			return err
		}

		task.ProjectID = &project.ID
		if _, err := lifecycle.SaveTask(ctx, tx, task); err != nil {
			return err
		}
		result = &dto.LinkResult{Status: dto.LinkStatusSuccess, Message: msgTaskAdded}
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to add task to project", "project_id", projectID, "task_id", taskID, "error", err)
		return nil, err
	}

	if result.Status == dto.LinkStatusSuccess {
		logger.InfoContext(ctx, "Task added to project", "project_id", projectID, "task_id", taskID)
		s.invalidate(ctx, projectID)
		s.publish(ctx, ports.EventTaskLinked, actor, &taskID, &projectID, "", nil)
	}
	return result, nil
}

func (s *ProjectServiceImpl) RemoveTaskFromProject(ctx context.Context, actor *models.Actor, projectID, taskID uuid.UUID) (*dto.LinkResult, error) {
	if err := s.perms.Check(actor, services.EntityProject, services.ActionWrite, nil); err != nil {
		return nil, err
	}
	if err := s.perms.Check(actor, services.EntityTask, services.ActionWrite, nil); err != nil {
		return nil, err
	}

	var result *dto.LinkResult
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		project, err := tx.Projects().GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := s.perms.Check(actor, services.EntityProject, services.ActionWrite, project); err != nil {
			return err
		}

		i := project.FindTaskLink(taskID)
		if i < 0 {
			result = &dto.LinkResult{Status: dto.LinkStatusInfo, Message: msgTaskNotInProject}
			return nil
		}

		task, err := tx.Tasks().GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := s.perms.Check(actor, services.EntityTask, services.ActionWrite, task); err != nil {
			return err
		}

		project.RemoveTaskLinkAt(i)
		if err := lifecycle.SaveProject(ctx, tx, project); err != nil {
			return err
		}

		task.ProjectID = nil
		if _, err := lifecycle.SaveTask(ctx, tx, task); err != nil {
			return err
		}
		result = &dto.LinkResult{Status: dto.LinkStatusSuccess, Message: msgTaskRemoved}
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to remove task from project", "project_id", projectID, "task_id", taskID, "error", err)
		return nil, err
	}

	if result.Status == dto.LinkStatusSuccess {
		logger.InfoContext(ctx, "Task removed from project", "project_id", projectID, "task_id", taskID)
		s.invalidate(ctx, projectID)
		s.publish(ctx, ports.EventTaskUnlinked, actor, &taskID, &projectID, "", nil)
	}
	return result, nil
}
