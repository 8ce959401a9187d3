package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avbelov/taskboard/internal/errs"
	"github.com/avbelov/taskboard/internal/model"
	"github.com/avbelov/taskboard/internal/query"
	"github.com/avbelov/taskboard/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// TaskService defines owner-scoped task operations. Every operation takes
// the authenticated user ID resolved by the auth middleware; ownership is
// never derived from request input.
type TaskService interface {
	// Create stores a new task owned by userID.
	Create(ctx context.Context, userID uuid.UUID, d model.TaskDraft) (*model.Task, error)
	// Get returns a single owned task.
	Get(ctx context.Context, userID uuid.UUID, rawID string) (*model.Task, error)
	// List returns one page of owned tasks plus pagination metadata.
	List(ctx context.Context, userID uuid.UUID, p query.Params) ([]model.Task, model.Pagination, error)
	// Update applies a sparse patch to an owned task.
	Update(ctx context.Context, userID uuid.UUID, rawID string, patch model.TaskPatch) (*model.Task, error)
	// Delete removes an owned task and returns its snapshot.
	Delete(ctx context.Context, userID uuid.UUID, rawID string) (*model.Task, error)
}

type TaskServiceImpl struct {
	repo repository.TaskRepository
}

// NewTaskService constructs TaskService.
func NewTaskService(repo repository.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{repo: repo}
}

// Create validates the draft, forces ownership to userID, and stores the task.
func (s *TaskServiceImpl) Create(ctx context.Context, userID uuid.UUID, d model.TaskDraft) (*model.Task, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}
	status := d.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, d.Status)
	}
	priority := d.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", errs.ErrValidation, d.Priority)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t := &model.Task{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: d.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     d.DueDate,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	// re-read to pick up timestamps and the owner summary
	return s.repo.Get(ctx, userID, id)
}

// Get returns the task only when it exists and belongs to userID.
func (s *TaskServiceImpl) Get(ctx context.Context, userID uuid.UUID, rawID string) (*model.Task, error) {
	taskID, err := parseTaskID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, taskID)
}

// List builds the filter from untrusted parameters and fetches one page.
func (s *TaskServiceImpl) List(ctx context.Context, userID uuid.UUID, p query.Params) ([]model.Task, model.Pagination, error) {
	f := query.Build(userID, p)
	tasks, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return tasks, query.Paginate(f.Page, f.Limit, total), nil
}

// Update applies only the fields present in the patch; absent fields keep
// their prior values.
func (s *TaskServiceImpl) Update(ctx context.Context, userID uuid.UUID, rawID string, patch model.TaskPatch) (*model.Task, error) {
	taskID, err := parseTaskID(rawID)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", errs.ErrValidation)
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		if !model.ValidStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, *patch.Status)
		}
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !model.ValidPriority(*patch.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", errs.ErrValidation, *patch.Priority)
		}
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the task and returns its last state.
func (s *TaskServiceImpl) Delete(ctx context.Context, userID uuid.UUID, rawID string) (*model.Task, error) {
	taskID, err := parseTaskID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, userID, taskID)
}

// parseTaskID rejects malformed identifiers before any store round-trip.
func parseTaskID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errs.ErrInvalidID
	}
	return id, nil
}
