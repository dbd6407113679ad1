package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateProjectRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Project creation attempt", "user_id", actor.ID, "title", req.Title, "tasks", len(req.Tasks))

	project, err := h.projectService.CreateProject(ctx, actor, &req)
	if err != nil {
		logger.WarnContext(ctx, "Project creation failed", "user_id", actor.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "slug", project.Slug)

	return utils.CreatedResponse(c, dto.ProjectToProjectResponse(project))
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, ok, err := uuidParam(c, "id", "project")
	if !ok {
		return err
	}

	project, err := h.projectService.GetProject(ctx, actor, projectID)
	if err != nil {
		logger.WarnContext(ctx, "Project lookup failed", "project_id", projectID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProjectToProjectResponse(project))
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, ok, err := uuidParam(c, "id", "project")
	if !ok {
		return err
	}

	var req dto.UpdateProjectRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	project, err := h.projectService.UpdateProject(ctx, actor, projectID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Project update failed", "project_id", projectID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Project updated", "project_id", projectID, "status", project.Status)

	return utils.SuccessResponse(c, dto.ProjectToProjectResponse(project))
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, ok, err := uuidParam(c, "id", "project")
	if !ok {
		return err
	}

	if err := h.projectService.DeleteProject(ctx, actor, projectID); err != nil {
		logger.WarnContext(ctx, "Project deletion failed", "project_id", projectID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Project deleted", "project_id", projectID)

	return utils.MessageResponse(c, "Project deleted successfully")
}

func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ProjectFilterRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}

	summaries, total, err := h.projectService.ListProjects(ctx, actor, &req)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to retrieve projects", "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	page, limit, _ := dto.Normalize(req.Page, req.Limit)
	return utils.PaginatedSuccessResponse(c, summaries, total, page, limit)
}

func (h *ProjectHandler) ListProjectTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, ok, err := uuidParam(c, "id", "project")
	if !ok {
		return err
	}

	links, err := h.projectService.ListProjectTasks(ctx, actor, projectID)
	if err != nil {
		logger.WarnContext(ctx, "Project tasks lookup failed", "project_id", projectID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProjectTasksToResponses(links))
}

// AddTask links a task; an existing link is reported as info, not an error.
func (h *ProjectHandler) AddTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, ok, err := uuidParam(c, "id", "project")
	if !ok {
		return err
	}

	var req dto.LinkTaskRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	taskID := uuid.MustParse(req.Task)

	result, err := h.projectService.AddTaskToProject(ctx, actor, projectID, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Linking task failed", "project_id", projectID, "task_id", taskID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task link requested", "project_id", projectID, "task_id", taskID, "result", result.Status)

	return utils.SuccessResponse(c, result)
}

func (h *ProjectHandler) RemoveTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, ok, err := uuidParam(c, "id", "project")
	if !ok {
		return err
	}
	taskID, ok, err := uuidParam(c, "taskId", "task")
	if !ok {
		return err
	}

	result, err := h.projectService.RemoveTaskFromProject(ctx, actor, projectID, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Unlinking task failed", "project_id", projectID, "task_id", taskID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task unlink requested", "project_id", projectID, "task_id", taskID, "result", result.Status)

	return utils.SuccessResponse(c, result)
}
