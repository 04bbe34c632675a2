package services

import (
	"context"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/lifecycle"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

// Messenger opens a conversation between a task owner and an accepted
// applicant. Delivery is owned by another service.
type Messenger interface {
	OpenChannel(ctx context.Context, ownerID, applicantID string) error
}

// LogMessenger is used when no messaging service is configured.
type LogMessenger struct{}

func (LogMessenger) OpenChannel(ctx context.Context, ownerID, applicantID string) error {
	log.Printf("messaging: channel requested between owner %s and applicant %s", ownerID, applicantID)
	return nil
}

type ApplicationService struct {
	tasks     *repository.TaskRepository
	apps      *repository.ApplicationRepository
	messenger Messenger
}

func NewApplicationService(
	tasks *repository.TaskRepository,
	apps *repository.ApplicationRepository,
	messenger Messenger,
) *ApplicationService {
	if messenger == nil {
		messenger = LogMessenger{}
	}
	return &ApplicationService{tasks: tasks, apps: apps, messenger: messenger}
}

func (s *ApplicationService) Submit(
	ctx context.Context,
	taskID, applicantID, message string,
	proposedPrice decimal.NullDecimal,
) (app *model.Application, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Submit")
	defer func() { finishSpan(span, err) }()

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CanSubmit(task, applicantID, message); err != nil {
		return nil, err
	}
	if proposedPrice.Valid && proposedPrice.Decimal.IsNegative() {
		return nil, apperrors.Validation("proposed price must not be negative", "proposedPrice")
	}

	app = &model.Application{
		TaskID:        task.ID,
		ApplicantID:   applicantID,
		Message:       strings.TrimSpace(message),
		ProposedPrice: proposedPrice,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("application.id", app.ID))
	return app, nil
}

type TransitionResult struct {
	Application *model.Application `json:"application"`
	// ContactUserID is set on acceptance so the caller can open a
	// conversation with the applicant.
	ContactUserID string `json:"contactUserId,omitempty"`
}

// Transition records the owner's decision. Other applications of the same
// task are left untouched, so several may be accepted at once.
func (s *ApplicationService) Transition(
	ctx context.Context,
	applicationID, taskID, status, requesterID string,
) (res *TransitionResult, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Transition")
	defer func() { finishSpan(span, err) }()

	to, err := lifecycle.ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if taskID != "" && taskID != app.TaskID {
		return nil, apperrors.ErrApplicationNotFound
	}

	task, err := s.tasks.FindByID(ctx, app.TaskID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Transition(task, app, to, requesterID); err != nil {
		return nil, err
	}
	if err := s.apps.UpdateStatus(ctx, app); err != nil {
		return nil, err
	}

	res = &TransitionResult{Application: app}
	if to == constants.ApplicationAccepted {
		res.ContactUserID = app.ApplicantID
		if err := s.messenger.OpenChannel(ctx, task.OwnerID, app.ApplicantID); err != nil {
			log.Printf("messaging: failed to open channel for application %s: %v", app.ID, err)
		}
	}

	span.SetAttributes(
		attribute.String("application.id", app.ID),
		attribute.String("application.status", string(app.Status)),
	)
	return res, nil
}

func (s *ApplicationService) ListForTask(ctx context.Context, taskID, requesterID string) ([]model.Application, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != requesterID {
		return nil, apperrors.ErrNotTaskOwner
	}
	return s.apps.ListByTask(ctx, taskID)
}

func (s *ApplicationService) ListForApplicant(ctx context.Context, applicantID string) ([]model.Application, error) {
	return s.apps.ListByApplicant(ctx, applicantID)
}
