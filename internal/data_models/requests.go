package dto

import (
	"encoding/json"
	"time"
)

// Price fields stay raw so both 12.5 and "12.5" are accepted and coercion
// failures are reported as validation errors rather than bind errors.

type CreateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Location    *string         `json:"location"`
	Price       json.RawMessage `json:"price"`
	PriceType   string          `json:"priceType"`
	Deadline    *time.Time      `json:"deadline"`
	Urgent      bool            `json:"urgent"`
	Remote      bool            `json:"remote"`
	Conditions  string          `json:"conditions"`
	Images      []string        `json:"images"`
}

type UpdateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Location    *string         `json:"location"`
	Price       json.RawMessage `json:"price"`
	PriceType   *string         `json:"priceType"`
	Deadline    *time.Time      `json:"deadline"`
	Urgent      *bool           `json:"urgent"`
	Remote      *bool           `json:"remote"`
	Conditions  *string         `json:"conditions"`
	Images      []string        `json:"images"`
}

type ChangeTaskStatusRequest struct {
	Status string `json:"status"`
}

type SubmitApplicationRequest struct {
	TaskID        string          `json:"taskId"`
	ApplicantID   string          `json:"applicantId"`
	Message       string          `json:"message"`
	ProposedPrice json.RawMessage `json:"proposedPrice"`
}

type TransitionApplicationRequest struct {
	Status      string `json:"status"`
	TaskID      string `json:"taskId"`
	RequesterID string `json:"requesterId"`
}
