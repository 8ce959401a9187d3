package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/avbelov/taskboard/internal/errs"
	"github.com/avbelov/taskboard/internal/model"
	"github.com/avbelov/taskboard/internal/query"
	"github.com/avbelov/taskboard/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// fakeTasks is an in-memory owner-scoped task store.
type fakeTasks struct {
	byID map[uuid.UUID]*model.Task
	seq  int

	getCalls  int
	listCalls int
}

var _ repository.TaskRepository = (*fakeTasks)(nil)

func newFakeTasks() *fakeTasks {
	return &fakeTasks{byID: map[uuid.UUID]*model.Task{}}
}

func (f *fakeTasks) Create(_ context.Context, t *model.Task) error {
	f.seq++
	cpy := *t
	cpy.CreatedAt = time.Unix(int64(f.seq), 0)
	cpy.UpdatedAt = cpy.CreatedAt
	cpy.Owner = model.PublicUser{ID: t.UserID, Username: "owner", Email: "owner@example.com"}
	f.byID[t.ID] = &cpy
	return nil
}

func (f *fakeTasks) Get(_ context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	f.getCalls++
	t, ok := f.byID[taskID]
	if !ok || t.UserID != userID {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTasks) List(_ context.Context, flt model.TaskFilter) ([]model.Task, int, error) {
	f.listCalls++
	var match []model.Task
	for _, t := range f.byID {
		if t.UserID != flt.UserID {
			continue
		}
		if flt.Status != "" && t.Status != flt.Status {
			continue
		}
		if flt.Priority != "" && t.Priority != flt.Priority {
			continue
		}
		if flt.Search != "" {
			s := strings.ToLower(flt.Search)
			if !strings.Contains(strings.ToLower(t.Title), s) &&
				!strings.Contains(strings.ToLower(t.Description), s) {
				continue
			}
		}
		match = append(match, *t)
	}
	sort.Slice(match, func(i, j int) bool { return match[i].CreatedAt.After(match[j].CreatedAt) })
	total := len(match)
	off := flt.Offset()
	if off > total {
		off = total
	}
	end := off + flt.Limit
	if end > total {
		end = total
	}
	return match[off:end], total, nil
}

func (f *fakeTasks) Update(_ context.Context, t *model.Task) error {
	ex, ok := f.byID[t.ID]
	if !ok || ex.UserID != t.UserID {
		return errs.ErrNotFound
	}
	cpy := *t
	cpy.UpdatedAt = time.Now()
	f.byID[t.ID] = &cpy
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	t, ok := f.byID[taskID]
	if !ok || t.UserID != userID {
		return nil, errs.ErrNotFound
	}
	delete(f.byID, taskID)
	c := *t
	return &c, nil
}

func strptr(s string) *string { return &s }

func TestTasks_Create_Validation(t *testing.T) {
	t.Parallel()
	s := NewTaskService(newFakeTasks())
	owner := uuid.Must(uuid.NewV4())

	if _, err := s.Create(context.Background(), owner, model.TaskDraft{Title: "   "}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on blank title, got %v", err)
	}
	if _, err := s.Create(context.Background(), owner, model.TaskDraft{Title: "x", Status: "later"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on unknown status, got %v", err)
	}
	if _, err := s.Create(context.Background(), owner, model.TaskDraft{Title: "x", Priority: "urgent"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on unknown priority, got %v", err)
	}
	if _, err := s.Create(context.Background(), uuid.Nil, model.TaskDraft{Title: "x"}); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want unauthorized on nil owner, got %v", err)
	}
}

func TestTasks_Create_MinimalDraft(t *testing.T) {
	t.Parallel()
	s := NewTaskService(newFakeTasks())
	owner := uuid.Must(uuid.NewV4())

	task, err := s.Create(context.Background(), owner, model.TaskDraft{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Title != "Buy milk" || task.UserID != owner {
		t.Fatalf("bad task: %+v", task)
	}
	if task.Status != model.StatusPending || task.Priority != model.PriorityMedium {
		t.Fatalf("defaults not applied: status=%q priority=%q", task.Status, task.Priority)
	}
	if task.Description != "" || task.DueDate != nil {
		t.Fatalf("optional fields should be unset: %+v", task)
	}
}

func TestTasks_Get_OwnershipMasking(t *testing.T) {
	t.Parallel()
	repo := newFakeTasks()
	s := NewTaskService(repo)
	alice := uuid.Must(uuid.NewV4())
	bob := uuid.Must(uuid.NewV4())

	task, err := s.Create(context.Background(), alice, model.TaskDraft{Title: "secret"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Bob requesting Alice's task and Bob requesting a random id give the same error.
	_, errForeign := s.Get(context.Background(), bob, task.ID.String())
	_, errMissing := s.Get(context.Background(), bob, uuid.Must(uuid.NewV4()).String())
	if !errors.Is(errForeign, errs.ErrNotFound) || !errors.Is(errMissing, errs.ErrNotFound) {
		t.Fatalf("ownership not masked: foreign=%v missing=%v", errForeign, errMissing)
	}

	got, err := s.Get(context.Background(), alice, task.ID.String())
	if err != nil || got.ID != task.ID {
		t.Fatalf("owner get: %v %v", got, err)
	}
}

func TestTasks_Get_MalformedID_ShortCircuits(t *testing.T) {
	t.Parallel()
	repo := newFakeTasks()
	s := NewTaskService(repo)
	owner := uuid.Must(uuid.NewV4())

	for _, raw := range []string{"", "abc", "12345", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"} {
		if _, err := s.Get(context.Background(), owner, raw); !errors.Is(err, errs.ErrInvalidID) {
			t.Fatalf("Get(%q): want ErrInvalidID, got %v", raw, err)
		}
		if _, err := s.Update(context.Background(), owner, raw, model.TaskPatch{}); !errors.Is(err, errs.ErrInvalidID) {
			t.Fatalf("Update(%q): want ErrInvalidID, got %v", raw, err)
		}
		if _, err := s.Delete(context.Background(), owner, raw); !errors.Is(err, errs.ErrInvalidID) {
			t.Fatalf("Delete(%q): want ErrInvalidID, got %v", raw, err)
		}
	}
	if repo.getCalls != 0 {
		t.Fatalf("store must not be queried for malformed ids, got %d calls", repo.getCalls)
	}
}

func TestTasks_List_Pagination(t *testing.T) {
	t.Parallel()
	repo := newFakeTasks()
	s := NewTaskService(repo)
	owner := uuid.Must(uuid.NewV4())

	for i := 0; i < 12; i++ {
		if _, err := s.Create(context.Background(), owner, model.TaskDraft{Title: "task"}); err != nil {
			t.Fatalf("Create[%d]: %v", i, err)
		}
	}

	tasks, pg, err := s.List(context.Background(), owner, query.Params{Page: "2", Limit: "5"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 5 {
		t.Fatalf("want 5 tasks on page 2, got %d", len(tasks))
	}
	if pg.CurrentPage != 2 || pg.TotalPages != 3 || pg.TotalTasks != 12 || pg.TasksPerPage != 5 {
		t.Fatalf("bad pagination: %+v", pg)
	}
	if !pg.HasNextPage || !pg.HasPrevPage {
		t.Fatalf("want hasNext and hasPrev on middle page: %+v", pg)
	}
}

func TestTasks_List_SearchMatchesDescription(t *testing.T) {
	t.Parallel()
	s := NewTaskService(newFakeTasks())
	owner := uuid.Must(uuid.NewV4())

	if _, err := s.Create(context.Background(), owner, model.TaskDraft{Title: "errands", Description: "buy MILK and bread"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(context.Background(), owner, model.TaskDraft{Title: "unrelated"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tasks, _, err := s.List(context.Background(), owner, query.Params{Search: "milk"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "errands" {
		t.Fatalf("search should match description: %+v", tasks)
	}
}

func TestTasks_Update_SparsePatch(t *testing.T) {
	t.Parallel()
	s := NewTaskService(newFakeTasks())
	owner := uuid.Must(uuid.NewV4())

	task, err := s.Create(context.Background(), owner, model.TaskDraft{
		Title:       "Write report",
		Description: "quarterly numbers",
		Priority:    model.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Update(context.Background(), owner, task.ID.String(), model.TaskPatch{
		Status: strptr(model.StatusCompleted),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != model.StatusCompleted {
		t.Fatalf("status not updated: %+v", got)
	}
	if got.Title != "Write report" || got.Description != "quarterly numbers" || got.Priority != model.PriorityHigh {
		t.Fatalf("sparse patch touched other fields: %+v", got)
	}

	if _, err := s.Update(context.Background(), owner, task.ID.String(), model.TaskPatch{Title: strptr("  ")}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on blank title patch, got %v", err)
	}
	if _, err := s.Update(context.Background(), owner, task.ID.String(), model.TaskPatch{Status: strptr("done")}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on unknown status, got %v", err)
	}
}

func TestTasks_Delete_ReturnsSnapshot(t *testing.T) {
	t.Parallel()
	s := NewTaskService(newFakeTasks())
	owner := uuid.Must(uuid.NewV4())

	task, err := s.Create(context.Background(), owner, model.TaskDraft{Title: "temp"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	snap, err := s.Delete(context.Background(), owner, task.ID.String())
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snap.ID != task.ID || snap.Title != "temp" {
		t.Fatalf("bad snapshot: %+v", snap)
	}

	if _, err := s.Delete(context.Background(), owner, task.ID.String()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}
