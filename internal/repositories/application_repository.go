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

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts the application and bumps the task's counter in one
// transaction. The unique (task_id, applicant_id) index rejects duplicates.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	now := time.Now().UTC()
	app.ID = uuid.NewString()
	app.Status = constants.ApplicationPending
	app.CreatedAt = now
	app.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return tx.Model(&model.Task{}).
			Where("id = ?", app.TaskID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyApplied
		}
		return apperrors.Repository("failed to create application", err)
	}

	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.Repository("failed to load application", err)
	}
	return &app, nil
}

// UpdateStatus is a single statement write, so concurrent transitions
// resolve to whichever commits last.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, app *model.Application) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ?", app.ID).
		Updates(map[string]interface{}{
			"status":     app.Status,
			"updated_at": now,
		})
	if res.Error != nil {
		return apperrors.Repository("failed to update application", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrApplicationNotFound
	}

	app.UpdatedAt = now
	return nil
}

func (r *ApplicationRepository) ListByTask(ctx context.Context, taskID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.Repository("failed to list applications", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.Repository("failed to list applications", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) HasAccepted(ctx context.Context, taskID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("task_id = ? AND status = ?", taskID, constants.ApplicationAccepted).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Repository("failed to count applications", err)
	}
	return count > 0, nil
}

func (r *ApplicationRepository) HasApplied(ctx context.Context, taskID, applicantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("task_id = ? AND applicant_id = ?", taskID, applicantID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Repository("failed to count applications", err)
	}
	return count > 0, nil
}
