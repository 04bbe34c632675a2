package lifecycle

import (
	"fmt"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
)

func ParseTaskStatus(raw string) (constants.TaskStatus, error) {
	switch s := constants.TaskStatus(raw); s {
	case constants.TaskPending, constants.TaskActive, constants.TaskInProgress,
		constants.TaskCompleted, constants.TaskCancelled:
		return s, nil
	default:
		return "", apperrors.Validation(fmt.Sprintf("unknown task status %q", raw), "status")
	}
}

// isAllowedTaskTransition covers owner driven moves only. pending <-> active
// is decided by moderation, not by the owner, and a held task can only be
// withdrawn.
func isAllowedTaskTransition(from, to constants.TaskStatus) bool {
	switch from {
	case constants.TaskPending:
		return to == constants.TaskCancelled
	case constants.TaskActive:
		return to == constants.TaskInProgress || to == constants.TaskCancelled
	case constants.TaskInProgress:
		return to == constants.TaskCompleted || to == constants.TaskCancelled
	default:
		return false
	}
}

// TransitionTask applies an owner status change to task in memory.
func TransitionTask(task *model.Task, to constants.TaskStatus, requesterID string) error {
	if requesterID != task.OwnerID {
		return apperrors.ErrNotTaskOwner
	}
	if !isAllowedTaskTransition(task.Status, to) {
		return apperrors.Validation(fmt.Sprintf("cannot move task from %s to %s", task.Status, to), "status")
	}
	task.Status = to
	return nil
}

// Editable reports whether content edits may still re-enter moderation.
func Editable(task *model.Task) bool {
	return task.Status == constants.TaskPending || task.Status == constants.TaskActive
}

// VisibleTo reports whether a non-owner may read the task. Active tasks are
// public; in_progress and completed tasks stay readable to their applicants.
// pending and cancelled tasks may carry content that never passed
// moderation, so only the owner sees them.
func VisibleTo(task *model.Task, viewerID string, hasApplied bool) bool {
	if viewerID != "" && viewerID == task.OwnerID {
		return true
	}
	switch task.Status {
	case constants.TaskActive:
		return true
	case constants.TaskInProgress, constants.TaskCompleted:
		return hasApplied
	default:
		return false
	}
}
