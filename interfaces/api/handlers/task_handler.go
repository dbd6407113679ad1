package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/domain/dto"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateTaskRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Task creation attempt", "user_id", actor.ID, "title", req.Title)

	task, warnings, err := h.taskService.CreateTask(ctx, actor, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "user_id", actor.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", actor.ID)

	return utils.SuccessWithWarningsResponse(c, fiber.StatusCreated, "", dto.TaskToTaskResponse(task), warnings)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	taskID, ok, err := uuidParam(c, "id", "task")
	if !ok {
		return err
	}

	task, err := h.taskService.GetTask(ctx, actor, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Task lookup failed", "task_id", taskID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	taskID, ok, err := uuidParam(c, "id", "task")
	if !ok {
		return err
	}

	var req dto.UpdateTaskRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Task update attempt", "task_id", taskID, "user_id", actor.ID)

	task, warnings, err := h.taskService.UpdateTask(ctx, actor, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "warnings", len(warnings))

	return utils.SuccessWithWarningsResponse(c, fiber.StatusOK, "", dto.TaskToTaskResponse(task), warnings)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	taskID, ok, err := uuidParam(c, "id", "task")
	if !ok {
		return err
	}

	logger.InfoContext(ctx, "Task deletion attempt", "task_id", taskID, "user_id", actor.ID)

	if err := h.taskService.DeleteTask(ctx, actor, taskID); err != nil {
		logger.WarnContext(ctx, "Task deletion failed", "task_id", taskID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID)

	return utils.MessageResponse(c, "Task deleted successfully")
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	actor, err := currentActor(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.TaskFilterRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}

	tasks, total, err := h.taskService.ListTasks(ctx, actor, &req)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to retrieve tasks", "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	page, limit, _ := dto.Normalize(req.Page, req.Limit)
	return utils.PaginatedSuccessResponse(c, dto.TasksToSummaryResponses(tasks), total, page, limit)
}
