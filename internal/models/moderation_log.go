package model

import (
	"time"

	"gorm.io/datatypes"

	"task-market.com/task-market/internal/constants"
)

// ModerationLog is append-only. A nil ModeratedBy marks an automated decision.
type ModerationLog struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string                      `gorm:"size:36;not null;index" json:"taskId"`
	ModeratedBy *string                     `gorm:"size:64" json:"moderatedBy"`
	Action      constants.ModerationAction  `gorm:"type:varchar(20);not null" json:"action"`
	StatusAfter constants.TaskStatus        `gorm:"type:varchar(20);not null" json:"statusAfter"`
	Issues      datatypes.JSONSlice[string] `json:"issues"`
	Notes       string                      `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time                   `json:"createdAt"`
}
