package errors

var (
	ErrTaskNotAccepting    = Validation("task not accepting applications")
	ErrOwnApplication      = Validation("cannot apply to own task")
	ErrMessageRequired     = Validation("message is required", "message")
	ErrAlreadyApplied      = Validation("already applied")
	ErrInvalidAppStatus    = Validation("status must be one of accepted, rejected", "status")
	ErrTaskHasApplications = Validation("task has applications")
	ErrTaskHasAccepted     = Validation("task has accepted applications")
	ErrNotTaskOwner        = Authorization("only the task owner may perform this action")
	ErrUnauthenticated     = Authentication("authentication required")
)
