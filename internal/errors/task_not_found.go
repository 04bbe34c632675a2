package errors

var (
	ErrTaskNotFound        = NotFound("task not found")
	ErrApplicationNotFound = NotFound("application not found")
)
