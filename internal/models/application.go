package model

import (
	"time"

	"github.com/shopspring/decimal"

	"task-market.com/task-market/internal/constants"
)

// Application is unique per (task_id, applicant_id); the composite index is
// what serializes concurrent submissions.
type Application struct {
	ID            string                      `gorm:"primaryKey;size:36" json:"id"`
	TaskID        string                      `gorm:"size:36;not null;uniqueIndex:idx_application_task_applicant" json:"taskId"`
	ApplicantID   string                      `gorm:"size:64;not null;uniqueIndex:idx_application_task_applicant;index" json:"applicantId"`
	Message       string                      `gorm:"type:text;not null" json:"message"`
	ProposedPrice decimal.NullDecimal         `gorm:"type:decimal(12,2)" json:"proposedPrice"`
	Status        constants.ApplicationStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}
