package repository

import (
	"github.com/velinpetkov/task-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByOwner retrieves the tasks owned by ownerID, optionally filtered
	ListByOwner(ownerID uint64, filter TaskFilter) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error

	// CountByStatus returns per-status task counts for an owner
	CountByStatus(ownerID uint64) (StatusCounts, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status *models.TaskStatus
}

// StatusCounts holds aggregate task counts for a single owner
type StatusCounts struct {
	Total      int64
	Waiting    int64
	InProgress int64
	Completed  int64
}
