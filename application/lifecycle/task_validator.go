// Package lifecycle holds the save-time rules that keep tasks and projects
// consistent with each other, and the pipeline that runs them.
package lifecycle

import (
	"taskboard/domain/models"
	"taskboard/pkg/apperror"
)

const ReopenWarning = "You are reopening a completed task."

// ValidateTask checks task before it is persisted. previous is the stored
// version, nil on create. Warnings are returned even when the save may proceed.
func ValidateTask(task, previous *models.Task) ([]string, error) {
	if task.StartDate != nil && task.EndDate != nil && task.StartDate.After(*task.EndDate) {
		return nil, apperror.Validation("End Date cannot be before Start Date")
	}

	var warnings []string
	if previous != nil && previous.Status == models.TaskStatusCompleted &&
		(task.Status == models.TaskStatusOpen || task.Status == models.TaskStatusInProgress) {
		warnings = append(warnings, ReopenWarning)
	}
	return warnings, nil
}
