// Package lifecycle holds the transition rules for applications and tasks.
// Nothing here performs I/O; callers load the records and persist the result.
package lifecycle

import (
	"strings"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

// ParseApplicationStatus accepts only the statuses an owner may set.
func ParseApplicationStatus(raw string) (constants.ApplicationStatus, error) {
	switch s := constants.ApplicationStatus(strings.TrimSpace(raw)); s {
	case constants.ApplicationAccepted, constants.ApplicationRejected:
		return s, nil
	default:
		return "", apperrors.ErrInvalidAppStatus
	}
}

// CanSubmit checks whether applicantID may apply to task with message.
// Duplicate submissions are caught by the repository's unique index.
func CanSubmit(task *model.Task, applicantID, message string) error {
	if !task.AcceptsApplications() {
		return apperrors.ErrTaskNotAccepting
	}
	if applicantID == task.OwnerID {
		return apperrors.ErrOwnApplication
	}
	if strings.TrimSpace(message) == "" {
		return apperrors.ErrMessageRequired
	}
	return nil
}

// AuthorizeTransition allows only the task owner to decide on an application.
// The applicant can never transition their own application.
func AuthorizeTransition(task *model.Task, app *model.Application, requesterID string) error {
	if app.TaskID != task.ID {
		return apperrors.ErrApplicationNotFound
	}
	if requesterID == "" || requesterID != task.OwnerID {
		return apperrors.ErrNotTaskOwner
	}
	return nil
}

// isAllowedApplicationTransition lets the owner decide a pending application
// and later flip the decision. Nothing moves back to pending.
func isAllowedApplicationTransition(from, to constants.ApplicationStatus) bool {
	switch from {
	case constants.ApplicationPending, constants.ApplicationAccepted, constants.ApplicationRejected:
		return to == constants.ApplicationAccepted || to == constants.ApplicationRejected
	default:
		return false
	}
}

// Transition validates and applies the owner's decision to app in memory.
func Transition(task *model.Task, app *model.Application, to constants.ApplicationStatus, requesterID string) error {
	if err := AuthorizeTransition(task, app, requesterID); err != nil {
		return err
	}
	if !isAllowedApplicationTransition(app.Status, to) {
		return apperrors.ErrInvalidAppStatus
	}
	app.Status = to
	return nil
}
