package repository

import (
	"context"

	"github.com/avbelov/taskboard/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TaskRepository provides owner-scoped task storage. Every read and write
// is constrained by the owning user ID; a task owned by someone else is
// indistinguishable from a missing one (errs.ErrNotFound either way).
type TaskRepository interface {
	// Create inserts a new task row.
	Create(ctx context.Context, t *model.Task) error
	// Get loads a single task owned by userID.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error)
	// List returns one page of tasks matching the filter plus the total match count.
	List(ctx context.Context, f model.TaskFilter) ([]model.Task, int, error)
	// Update overwrites the mutable columns of a task owned by userID.
	Update(ctx context.Context, t *model.Task) error
	// Delete removes a task owned by userID and returns the deleted snapshot.
	Delete(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error)
}
