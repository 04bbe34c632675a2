package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

type ModerationLogRepository struct {
	db *gorm.DB
}

func NewModerationLogRepository(db *gorm.DB) *ModerationLogRepository {
	return &ModerationLogRepository{db: db}
}

func (r *ModerationLogRepository) CreateModerationLog(ctx context.Context, entry *model.ModerationLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.Repository("failed to write moderation log", err)
	}
	return nil
}

func (r *ModerationLogRepository) ListByTask(ctx context.Context, taskID string) ([]model.ModerationLog, error) {
	var entries []model.ModerationLog
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Repository("failed to list moderation logs", err)
	}
	return entries, nil
}
