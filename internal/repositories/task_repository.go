package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.Version = 1
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Images == nil {
		task.Images = []string{}
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return apperrors.Repository("failed to create task", err)
	}

	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Repository("failed to load task", err)
	}
	return &task, nil
}

// ListActive returns publicly visible tasks, newest first.
func (r *TaskRepository) ListActive(ctx context.Context, category string, limit int) ([]model.Task, error) {
	if limit <= 0 {
		return nil, apperrors.Validation("limit must be positive", "limit")
	}

	var tasks []model.Task
	query := r.db.WithContext(ctx).
		Where("status = ?", constants.TaskActive).
		Order("created_at desc").Limit(limit)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, apperrors.Repository("failed to list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.Repository("failed to list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) IncrementViews(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
	if err != nil {
		return apperrors.Repository("failed to count view", err)
	}
	return nil
}

// Update writes owner editable fields and status guarded by the version
// column. A concurrent write makes it fail with ErrOptimisticLock.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res, now := r.update(task, r.db.WithContext(ctx))
	if res.Error != nil {
		return apperrors.Repository("failed to update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	task.UpdatedAt = now
	return nil
}

// UpdateUnaccepted is Update with the extra condition that no application of
// the task is accepted at the moment the row is written.
func (r *TaskRepository) UpdateUnaccepted(ctx context.Context, task *model.Task) error {
	query := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM applications WHERE applications.task_id = ? AND applications.status = ?)",
			task.ID, constants.ApplicationAccepted)

	res, now := r.update(task, query)
	if res.Error != nil {
		return apperrors.Repository("failed to update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.unacceptedUpdateFailure(ctx, task.ID)
	}

	task.Version++
	task.UpdatedAt = now
	return nil
}

func (r *TaskRepository) update(task *model.Task, query *gorm.DB) (*gorm.DB, time.Time) {
	now := time.Now().UTC()
	res := query.Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"category":    task.Category,
			"location":    task.Location,
			"conditions":  task.Conditions,
			"price":       task.Price,
			"price_type":  task.PriceType,
			"deadline":    task.Deadline,
			"urgent":      task.Urgent,
			"remote":      task.Remote,
			"images":      task.Images,
			"status":      task.Status,
			"updated_at":  now,
			"version":     gorm.Expr("version + 1"),
		})
	return res, now
}

func (r *TaskRepository) unacceptedUpdateFailure(ctx context.Context, taskID string) error {
	var accepted int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("task_id = ? AND status = ?", taskID, constants.ApplicationAccepted).
		Count(&accepted).Error
	if err != nil {
		return apperrors.Repository("failed to count applications", err)
	}
	if accepted > 0 {
		return apperrors.ErrTaskHasAccepted
	}
	return apperrors.ErrOptimisticLock
}

// DeleteUnapplied removes the task only while it has no applications.
func (r *TaskRepository) DeleteUnapplied(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ? AND applications_count = 0", id, ownerID).
		Delete(&model.Task{})
	if res.Error != nil {
		return apperrors.Repository("failed to delete task", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	task, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task.OwnerID != ownerID {
		return apperrors.ErrNotTaskOwner
	}
	return apperrors.ErrTaskHasApplications
}
