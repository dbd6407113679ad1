package dto

import (
	"taskboard/domain/models"
	"taskboard/pkg/utils"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		StartDate:   utils.FormatDate(task.StartDate),
		EndDate:     utils.FormatDate(task.EndDate),
		Details:     task.Details,
		ProjectID:   task.ProjectID,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TasksToSummaryResponses(tasks []*models.Task) []TaskSummaryResponse {
	resp := make([]TaskSummaryResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, TaskSummaryResponse{
			ID:        task.ID,
			Title:     task.Title,
			Status:    task.Status,
			Priority:  task.Priority,
			StartDate: utils.FormatDate(task.StartDate),
			EndDate:   utils.FormatDate(task.EndDate),
			ProjectID: task.ProjectID,
		})
	}
	return resp
}

func ProjectTasksToResponses(links []models.ProjectTask) []ProjectTaskResponse {
	resp := make([]ProjectTaskResponse, 0, len(links))
	for _, link := range links {
		resp = append(resp, ProjectTaskResponse{
			ID:        link.ID,
			Idx:       link.Idx,
			TaskID:    link.TaskID,
			TaskTitle: link.TaskTitle,
			Status:    link.Status,
			Priority:  link.Priority,
			StartDate: utils.FormatDate(link.StartDate),
			EndDate:   utils.FormatDate(link.EndDate),
		})
	}
	return resp
}

// ProjectToProjectResponse derives taskCount and progress from the cached link rows.
func ProjectToProjectResponse(project *models.Project) *ProjectResponse {
	if project == nil {
		return nil
	}
	completed := 0
	for _, link := range project.Tasks {
		if link.Status == models.TaskStatusCompleted {
			completed++
		}
	}
	return &ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Slug:        project.Slug,
		Description: project.Description,
		Status:      project.Status,
		StartDate:   utils.FormatDate(project.StartDate),
		EndDate:     utils.FormatDate(project.EndDate),
		OwnerID:     project.OwnerID,
		Tasks:       ProjectTasksToResponses(project.Tasks),
		TaskCount:   len(project.Tasks),
		Progress:    Progress(completed, len(project.Tasks)),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// Progress is completed/total as a percentage, 0 when there are no tasks.
func Progress(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
