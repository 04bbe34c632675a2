package validators

import (
	"github.com/shopspring/decimal"

	dto "task-market.com/task-market/internal/data_models"
	apperrors "task-market.com/task-market/internal/errors"
)

// ValidateSubmitApplicationRequest checks the request against the resolved
// identity. The remaining rules depend on the task and live in lifecycle.
func ValidateSubmitApplicationRequest(r *dto.SubmitApplicationRequest, taskID, identity string) (decimal.NullDecimal, error) {
	if r.TaskID != "" && r.TaskID != taskID {
		return decimal.NullDecimal{}, apperrors.Validation("taskId does not match the path", "taskId")
	}
	if r.ApplicantID != "" && r.ApplicantID != identity {
		return decimal.NullDecimal{}, apperrors.Authorization("applicantId must match the authenticated user")
	}
	if isAbsent(r.ProposedPrice) {
		return decimal.NullDecimal{}, nil
	}
	price, err := CoercePrice(r.ProposedPrice, "proposedPrice")
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(price), nil
}

func ValidateTransitionRequest(r *dto.TransitionApplicationRequest, identity string) error {
	if r.RequesterID != "" && r.RequesterID != identity {
		return apperrors.Authorization("requesterId must match the authenticated user")
	}
	if r.Status == "" {
		return apperrors.Validation("status is required", "status")
	}
	return nil
}
