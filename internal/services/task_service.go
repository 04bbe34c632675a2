package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/lifecycle"
	model "task-market.com/task-market/internal/models"
	"task-market.com/task-market/internal/moderation"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/trust"
)

// AuditRecorder accepts moderation entries without blocking the caller.
type AuditRecorder interface {
	Record(entry *model.ModerationLog)
}

type TaskService struct {
	tasks  *repository.TaskRepository
	apps   *repository.ApplicationRepository
	logs   *repository.ModerationLogRepository
	scorer *trust.Scorer
	engine *moderation.Engine
	audit  AuditRecorder
}

func NewTaskService(
	tasks *repository.TaskRepository,
	apps *repository.ApplicationRepository,
	logs *repository.ModerationLogRepository,
	scorer *trust.Scorer,
	engine *moderation.Engine,
	audit AuditRecorder,
) *TaskService {
	return &TaskService{
		tasks:  tasks,
		apps:   apps,
		logs:   logs,
		scorer: scorer,
		engine: engine,
		audit:  audit,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	Conditions  string
	Price       decimal.Decimal
	PriceType   constants.PriceType
	Deadline    *time.Time
	Urgent      bool
	Remote      bool
	Images      []string
}

type TaskResult struct {
	Task       *model.Task         `json:"task"`
	Moderation moderation.Decision `json:"moderation"`
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, in CreateTaskInput) (res *TaskResult, err error) {
	ctx, span := tracer.Start(ctx, "TaskService.CreateTask")
	defer func() { finishSpan(span, err) }()

	trustProfile := s.scorer.Score(ctx, ownerID)

	decision := s.engine.Evaluate(moderation.Draft{
		Title:       in.Title,
		Description: in.Description,
		Conditions:  in.Conditions,
		Price:       in.Price,
	}, trustProfile)

	priceType := in.PriceType
	if priceType == "" {
		priceType = constants.PriceFixed
	}

	task := &model.Task{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Location:    strings.TrimSpace(in.Location),
		Conditions:  in.Conditions,
		Price:       in.Price,
		PriceType:   priceType,
		Deadline:    in.Deadline,
		Urgent:      in.Urgent,
		Remote:      in.Remote,
		Images:      in.Images,
		Status:      decision.Status,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("task.id", task.ID),
		attribute.String("task.status", string(task.Status)),
		attribute.Int("moderation.issues", len(decision.Issues)),
	)

	s.audit.Record(newModerationEntry(task, decision))

	return &TaskResult{Task: task, Moderation: decision}, nil
}

func newModerationEntry(task *model.Task, decision moderation.Decision) *model.ModerationLog {
	entry := &model.ModerationLog{
		TaskID:      task.ID,
		Action:      constants.ModerationAutoApproved,
		StatusAfter: decision.Status,
		Notes:       "automatically approved",
	}
	if !decision.Approved() {
		entry.Action = constants.ModerationAutoReview
		entry.Issues = append([]string(nil), decision.Issues...)
		entry.Notes = "held for manual review"
	}
	return entry
}

// GetTask returns a task and counts the view. Tasks outside the public
// listing are reported as missing to viewers who may not read them.
func (s *TaskService) GetTask(ctx context.Context, id, viewerID string) (task *model.Task, err error) {
	ctx, span := tracer.Start(ctx, "TaskService.GetTask")
	defer func() { finishSpan(span, err) }()

	task, err = s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hasApplied := false
	if viewerID != "" && viewerID != task.OwnerID && task.Status != constants.TaskActive {
		if hasApplied, err = s.apps.HasApplied(ctx, task.ID, viewerID); err != nil {
			return nil, err
		}
	}
	if !lifecycle.VisibleTo(task, viewerID, hasApplied) {
		return nil, apperrors.ErrTaskNotFound
	}

	if viewerID != task.OwnerID {
		if err := s.tasks.IncrementViews(ctx, id); err != nil {
			return nil, err
		}
		task.ViewsCount++
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, category string, limit int) ([]model.Task, error) {
	return s.tasks.ListActive(ctx, category, limit)
}

func (s *TaskService) ListOwnTasks(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

// UpdateTaskInput carries optional edits; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	Conditions  *string
	Price       *decimal.Decimal
	PriceType   *constants.PriceType
	Deadline    *time.Time
	Urgent      *bool
	Remote      *bool
	Images      []string
}

// UpdateTask applies owner edits and runs moderation again so an approved
// task cannot be edited into one that would have been held.
func (s *TaskService) UpdateTask(ctx context.Context, requesterID, id string, in UpdateTaskInput) (res *TaskResult, err error) {
	ctx, span := tracer.Start(ctx, "TaskService.UpdateTask")
	defer func() { finishSpan(span, err) }()

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != requesterID {
		return nil, apperrors.ErrNotTaskOwner
	}
	if !lifecycle.Editable(task) {
		return nil, apperrors.Validation("task can no longer be edited", "status")
	}

	accepted, err := s.apps.HasAccepted(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if accepted {
		return nil, apperrors.ErrTaskHasAccepted
	}

	applyTaskEdits(task, in)

	trustProfile := s.scorer.Score(ctx, requesterID)
	// the count includes the task being edited
	if trustProfile.PriorTaskCount > 0 {
		trustProfile.PriorTaskCount--
	}

	decision := s.engine.Evaluate(moderation.Draft{
		Title:       task.Title,
		Description: task.Description,
		Conditions:  task.Conditions,
		Price:       task.Price,
	}, trustProfile)
	task.Status = decision.Status

	// an acceptance committed after the check above still blocks the write
	if err := s.tasks.UpdateUnaccepted(ctx, task); err != nil {
		return nil, err
	}

	return &TaskResult{Task: task, Moderation: decision}, nil
}

func applyTaskEdits(task *model.Task, in UpdateTaskInput) {
	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		task.Category = strings.TrimSpace(*in.Category)
	}
	if in.Location != nil {
		task.Location = strings.TrimSpace(*in.Location)
	}
	if in.Conditions != nil {
		task.Conditions = *in.Conditions
	}
	if in.Price != nil {
		task.Price = *in.Price
	}
	if in.PriceType != nil {
		task.PriceType = *in.PriceType
	}
	if in.Deadline != nil {
		task.Deadline = in.Deadline
	}
	if in.Urgent != nil {
		task.Urgent = *in.Urgent
	}
	if in.Remote != nil {
		task.Remote = *in.Remote
	}
	if in.Images != nil {
		task.Images = in.Images
	}
}

func (s *TaskService) DeleteTask(ctx context.Context, requesterID, id string) (err error) {
	ctx, span := tracer.Start(ctx, "TaskService.DeleteTask")
	defer func() { finishSpan(span, err) }()

	return s.tasks.DeleteUnapplied(ctx, id, requesterID)
}

func (s *TaskService) ChangeStatus(ctx context.Context, requesterID, id string, status constants.TaskStatus) (task *model.Task, err error) {
	ctx, span := tracer.Start(ctx, "TaskService.ChangeStatus")
	defer func() { finishSpan(span, err) }()

	task, err = s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.TransitionTask(task, status, requesterID); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ModerationHistory(ctx context.Context, requesterID, id string) ([]model.ModerationLog, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != requesterID {
		return nil, apperrors.ErrNotTaskOwner
	}
	return s.logs.ListByTask(ctx, id)
}
