package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/velinpetkov/task-tracker-api/internal/models"
	"github.com/velinpetkov/task-tracker-api/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskAccessDenied    = errors.New("task does not belong to the authenticated user")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidStatus       = errors.New("invalid task status")
)

// TaskService handles task business logic. Every mutating operation checks
// ownership before touching persistence.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasks returns the tasks owned by userID, optionally filtered by status.
func (s *TaskService) ListTasks(userID uint64, status *models.TaskStatus) ([]models.Task, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	tasks, err := s.taskRepo.ListByOwner(userID, repository.TaskFilter{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Description string
	Status      models.TaskStatus
}

// CreateTask creates a task owned by userID. The owner is always the
// authenticated caller regardless of the request payload.
func (s *TaskService) CreateTask(userID uint64, input CreateTaskInput) (*models.Task, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusWaiting
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task := &models.Task{
		Description: description,
		Status:      status,
		UserID:      userID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput carries the optional task fields to change.
type UpdateTaskInput struct {
	Description *string
	Status      *models.TaskStatus
}

// UpdateTask changes a task's description and/or status after verifying
// the caller owns it.
func (s *TaskService) UpdateTask(callerID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwnedTask(callerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		task.Description = description
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task after verifying the caller owns it.
func (s *TaskService) DeleteTask(callerID, taskID uint64) error {
	task, err := s.findOwnedTask(callerID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// Statistics returns per-status counts of the caller's tasks.
func (s *TaskService) Statistics(userID uint64) (repository.StatusCounts, error) {
	counts, err := s.taskRepo.CountByStatus(userID)
	if err != nil {
		return repository.StatusCounts{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	return counts, nil
}

func (s *TaskService) findOwnedTask(callerID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !AuthorizeOwner(callerID, task.UserID) {
		return nil, ErrTaskAccessDenied
	}

	return task, nil
}
