package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

// ProfileRepository reads through the privileged connection. It is used by
// trust scoring and identity confirmation, never by request handlers.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(privileged *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: privileged}
}

var ErrProfileNotFound = apperrors.NotFound("profile not found")

func (r *ProfileRepository) FindProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, apperrors.Repository("failed to load profile", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) CountTasksByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Repository("failed to count tasks", err)
	}
	return count, nil
}

// Upsert is used by the admin CLI to mirror identity provider profiles.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return apperrors.Repository("failed to save profile", err)
	}
	return nil
}
