package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"task-market.com/task-market/internal/constants"
)

type Task struct {
	ID                string                      `gorm:"primaryKey;size:36" json:"id"`
	OwnerID           string                      `gorm:"size:64;not null;index" json:"ownerId"`
	Title             string                      `gorm:"not null" json:"title"`
	Description       string                      `gorm:"type:text;not null" json:"description"`
	Category          string                      `gorm:"size:100;not null;index" json:"category"`
	Location          string                      `gorm:"not null" json:"location"`
	Conditions        string                      `gorm:"type:text" json:"conditions,omitempty"`
	Price             decimal.Decimal             `gorm:"type:decimal(12,2);not null" json:"price"`
	PriceType         constants.PriceType         `gorm:"type:varchar(10);not null" json:"priceType"`
	Deadline          *time.Time                  `json:"deadline,omitempty"`
	Urgent            bool                        `gorm:"not null;default:false" json:"urgent"`
	Remote            bool                        `gorm:"not null;default:false" json:"remote"`
	Images            datatypes.JSONSlice[string] `json:"images"`
	Status            constants.TaskStatus        `gorm:"type:varchar(20);not null;index" json:"status"`
	ViewsCount        uint                        `gorm:"not null;default:0" json:"viewsCount"`
	ApplicationsCount uint                        `gorm:"not null;default:0" json:"applicationsCount"`
	Version           uint                        `gorm:"not null;default:1" json:"version"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

// AcceptsApplications reports whether new applications may be submitted.
func (t *Task) AcceptsApplications() bool {
	return t.Status == constants.TaskActive || t.Status == constants.TaskPending
}
