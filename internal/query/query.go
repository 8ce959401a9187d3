// Package query builds task listing predicates from untrusted request
// parameters and derives pagination metadata.
package query

import (
	"strconv"

	"github.com/avbelov/taskboard/internal/model"
	"github.com/gofrs/uuid/v5"
)

const (
	// DefaultPage is used when the page parameter is missing or not a positive integer.
	DefaultPage = 1
	// DefaultLimit is used when the limit parameter is missing or not a positive integer.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the client asks for.
	MaxLimit = 100
)

// Params carries the raw, untrusted listing parameters as received on the wire.
type Params struct {
	Status   string
	Priority string
	Search   string
	Page     string
	Limit    string
}

// Build seeds a TaskFilter with the authenticated owner and folds in the
// optional parameters. The owner constraint always comes from the resolved
// identity and can never be overridden by a request parameter.
func Build(owner uuid.UUID, p Params) model.TaskFilter {
	return model.TaskFilter{
		UserID:   owner,
		Status:   p.Status,
		Priority: p.Priority,
		Search:   p.Search,
		Page:     positiveInt(p.Page, DefaultPage, 0),
		Limit:    positiveInt(p.Limit, DefaultLimit, MaxLimit),
	}
}

// positiveInt parses s as a positive integer, falling back to def on
// missing, non-numeric, or non-positive input. A max of 0 means unbounded.
func positiveInt(s string, def, max int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// Paginate derives page metadata from the requested page, the page size,
// and the total match count. No extra queries are needed.
func Paginate(page, limit, total int) model.Pagination {
	totalPages := (total + limit - 1) / limit
	return model.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalTasks:   total,
		TasksPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}
