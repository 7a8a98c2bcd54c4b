package dto

import (
	"github.com/velinpetkov/task-tracker-api/internal/models"
	"github.com/velinpetkov/task-tracker-api/internal/repository"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	UserID      uint64            `json:"user_id"`
}

// TaskListResponse wraps the owned tasks of the caller
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
}

// TaskStatisticsDTO holds aggregate counts per status
type TaskStatisticsDTO struct {
	TotalTasks      int64 `json:"total_tasks"`
	WaitingTasks    int64 `json:"waiting_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Description: task.Description,
		Status:      task.Status,
		UserID:      task.UserID,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return TaskListResponse{Tasks: items}
}

// ToTaskStatisticsDTO converts repository counts to the response shape
func ToTaskStatisticsDTO(counts repository.StatusCounts) TaskStatisticsDTO {
	return TaskStatisticsDTO{
		TotalTasks:      counts.Total,
		WaitingTasks:    counts.Waiting,
		InProgressTasks: counts.InProgress,
		CompletedTasks:  counts.Completed,
	}
}
