package constants

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskActive     TaskStatus = "active"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

type PriceType string

const (
	PriceFixed  PriceType = "fixed"
	PriceHourly PriceType = "hourly"
)

func (p PriceType) Valid() bool {
	return p == PriceFixed || p == PriceHourly
}

type ModerationAction string

const (
	ModerationAutoApproved ModerationAction = "auto_approved"
	ModerationAutoReview   ModerationAction = "auto_review"
)
