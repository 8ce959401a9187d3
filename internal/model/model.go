// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Task status values accepted on writes.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task priority values accepted on writes.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// User represents an account stored on the server. The password digest is never exposed.
type User struct {
	ID        uuid.UUID // PK
	Username  string    // unique
	Email     string    // unique
	PwdHash   []byte    // bcrypt digest (salt embedded)
	CreatedAt time.Time
}

// PublicUser is the owner summary embedded in API responses.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Public returns the externally visible view of a user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Task is a single to-do record owned by exactly one user.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Owner       PublicUser `json:"user"`
}

// TaskDraft carries the fields accepted when creating a task.
type TaskDraft struct {
	Title       string
	Description string
	Status      string // defaults to pending
	Priority    string // defaults to medium
	DueDate     *time.Time
}

// TaskPatch carries a sparse update: only non-nil fields are applied.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// TaskFilter is the request-scoped listing predicate. UserID is always set
// by the query builder and cannot come from request parameters.
type TaskFilter struct {
	UserID   uuid.UUID
	Status   string // empty means no constraint
	Priority string // empty means no constraint
	Search   string // case-insensitive substring over title OR description
	Page     int    // >= 1
	Limit    int    // >= 1
}

// Offset returns the number of rows to skip for the current page.
func (f TaskFilter) Offset() int { return (f.Page - 1) * f.Limit }

// Pagination describes the listing page returned to the client.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalTasks   int  `json:"totalTasks"`
	TasksPerPage int  `json:"tasksPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// ValidStatus reports whether s is one of the accepted status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the accepted priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
