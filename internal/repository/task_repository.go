package repository

import (
	"github.com/velinpetkov/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner retrieves the tasks owned by ownerID, oldest first
func (r *GormTaskRepository) ListByOwner(ownerID uint64, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	query := r.db.Where("user_id = ?", ownerID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CountByStatus returns per-status task counts for an owner in one query
func (r *GormTaskRepository) CountByStatus(ownerID uint64) (StatusCounts, error) {
	var rows []struct {
		Status models.TaskStatus
		Count  int64
	}

	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case models.TaskStatusWaiting:
			counts.Waiting = row.Count
		case models.TaskStatusInProgress:
			counts.InProgress = row.Count
		case models.TaskStatusCompleted:
			counts.Completed = row.Count
		}
	}

	return counts, nil
}
