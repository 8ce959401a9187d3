package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avbelov/taskboard/internal/errs"
	"github.com/avbelov/taskboard/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// TaskRepo implements TaskRepository using PostgreSQL.
type TaskRepo struct{ db *DB }

// NewTaskRepo constructs a task repository.
func NewTaskRepo(db *DB) *TaskRepo { return &TaskRepo{db: db} }

// taskColumns is the joined projection shared by Get and List.
const taskColumns = `
t.id, t.user_id, t.title, t.description, t.status, t.priority, t.due_date,
t.created_at, t.updated_at, u.username, u.email`

// Create inserts a new task row.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	const q = `
INSERT INTO tasks (id, user_id, title, description, status, priority, due_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q,
		t.ID, t.UserID, t.Title, t.Description, t.Status, t.Priority, t.DueDate)
	return err
}

// Get loads a single task constrained by both id and owner, so a foreign
// task reads the same as a missing one.
func (r *TaskRepo) Get(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	q := `
SELECT ` + taskColumns + `
FROM tasks t JOIN users u ON u.id = t.user_id
WHERE t.id=$1 AND t.user_id=$2`
	t, err := scanTask(r.db.Pool.QueryRow(ctx, q, taskID, userID))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return t, nil
}

// List returns one page of tasks matching the filter, newest first,
// plus the total match count (one count query, one fetch query).
func (r *TaskRepo) List(ctx context.Context, f model.TaskFilter) ([]model.Task, int, error) {
	where, args := buildWhere(f)

	var total int
	countQ := `SELECT count(*) FROM tasks t WHERE ` + where
	if err := r.db.Pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	fetchQ := `
SELECT ` + taskColumns + `
FROM tasks t JOIN users u ON u.id = t.user_id
WHERE ` + where + fmt.Sprintf(`
ORDER BY t.created_at DESC
LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.db.Pool.Query(ctx, fetchQ, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0, f.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Update overwrites the mutable columns of an owned task.
func (r *TaskRepo) Update(ctx context.Context, t *model.Task) error {
	const q = `
UPDATE tasks
SET title=$3, description=$4, status=$5, priority=$6, due_date=$7, updated_at=now()
WHERE id=$1 AND user_id=$2
RETURNING updated_at`
	err := r.db.Pool.QueryRow(ctx, q,
		t.ID, t.UserID, t.Title, t.Description, t.Status, t.Priority, t.DueDate).
		Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}

// Delete removes an owned task and returns its snapshot.
func (r *TaskRepo) Delete(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	const q = `
WITH del AS (
  DELETE FROM tasks WHERE id=$1 AND user_id=$2
  RETURNING id, user_id, title, description, status, priority, due_date, created_at, updated_at
)
SELECT del.id, del.user_id, del.title, del.description, del.status, del.priority, del.due_date,
del.created_at, del.updated_at, u.username, u.email
FROM del JOIN users u ON u.id = del.user_id`
	t, err := scanTask(r.db.Pool.QueryRow(ctx, q, taskID, userID))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return t, nil
}

// buildWhere composes the filter predicate. The owner equality is always
// the first condition; everything else is optional.
func buildWhere(f model.TaskFilter) (string, []any) {
	conds := []string{"t.user_id=$1"}
	args := []any{f.UserID}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("t.status=$%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		conds = append(conds, fmt.Sprintf("t.priority=$%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(t.title ILIKE $%d OR t.description ILIKE $%d)", n, n))
	}
	return strings.Join(conds, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	repl := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return repl.Replace(s)
}

func scanTask(row interface{ Scan(dest ...any) error }) (*model.Task, error) {
	var t model.Task
	if err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt, &t.Owner.Username, &t.Owner.Email,
	); err != nil {
		return nil, err
	}
	t.Owner.ID = t.UserID
	return &t, nil
}
