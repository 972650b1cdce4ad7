// Package listing implements the derive-filter-sort-paginate pipeline used
// by the management list endpoints. Every call recomputes the page from the
// raw list; there is no memoization, so the output always reflects the
// current cache contents and query.
package listing

import (
	"sort"
	"strings"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

// DefaultPageSize is the fixed window used by the management tables.
const DefaultPageSize = 10

// FilterAll matches every value of a role or status filter.
const FilterAll = "all"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec selects the active sort column and direction.
type SortSpec struct {
	Column    string
	Direction Direction
}

// Toggle applies the column-header click rule: selecting the active column
// flips the direction, selecting a different column makes it active and
// resets the direction to ascending.
func (s SortSpec) Toggle(column string) SortSpec {
	if column == s.Column {
		if s.Direction == Asc {
			return SortSpec{Column: column, Direction: Desc}
		}
		return SortSpec{Column: column, Direction: Asc}
	}
	return SortSpec{Column: column, Direction: Asc}
}

// Query carries the full list-view state: free-text search, enumerated
// filters, sort spec and the 1-based page.
type Query struct {
	Search   string
	Role     string
	Status   string
	Sort     SortSpec
	Page     int
	PageSize int
}

// Page is one displayed window of rows plus the pagination envelope.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Users runs the pipeline over the full user list. The input slice is not
// reordered.
func Users(all []domain.User, q Query) Page[domain.User] {
	term := strings.ToLower(q.Search)

	filtered := make([]domain.User, 0, len(all))
	for _, u := range all {
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Username), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		if !passFilter(q.Role, u.Role) || !passFilter(q.Status, u.Status) {
			continue
		}
		filtered = append(filtered, u)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return userLess(filtered[i], filtered[j], q.Sort)
	})

	return paginate(filtered, q.Page, q.PageSize)
}

// Employees runs the pipeline over the full employee list. Search covers
// name, email, emp_id and department; role/status filters do not apply.
func Employees(all []domain.Employee, q Query) Page[domain.Employee] {
	term := strings.ToLower(q.Search)

	filtered := make([]domain.Employee, 0, len(all))
	for _, e := range all {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Name), term) &&
			!strings.Contains(strings.ToLower(e.Email), term) &&
			!strings.Contains(strings.ToLower(e.EmpID), term) &&
			!strings.Contains(strings.ToLower(e.Department), term) {
			continue
		}
		filtered = append(filtered, e)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return employeeLess(filtered[i], filtered[j], q.Sort)
	})

	return paginate(filtered, q.Page, q.PageSize)
}

func passFilter(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

func userLess(a, b domain.User, s SortSpec) bool {
	var less, greater bool
	switch s.Column {
	case "email":
		less, greater = a.Email < b.Email, a.Email > b.Email
	case "role":
		less, greater = a.Role < b.Role, a.Role > b.Role
	case "status":
		less, greater = a.Status < b.Status, a.Status > b.Status
	case "created_at":
		less, greater = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.After(b.CreatedAt)
	default: // username
		less, greater = a.Username < b.Username, a.Username > b.Username
	}
	if s.Direction == Desc {
		return greater
	}
	return less
}

func employeeLess(a, b domain.Employee, s SortSpec) bool {
	var less, greater bool
	switch s.Column {
	case "email":
		less, greater = a.Email < b.Email, a.Email > b.Email
	case "emp_id":
		less, greater = a.EmpID < b.EmpID, a.EmpID > b.EmpID
	case "department":
		less, greater = a.Department < b.Department, a.Department > b.Department
	case "created_at":
		less, greater = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.After(b.CreatedAt)
	default: // name
		less, greater = a.Name < b.Name, a.Name > b.Name
	}
	if s.Direction == Desc {
		return greater
	}
	return less
}

// paginate slices the sorted sequence to [(page-1)*size, page*size).
// The page number is clamped to [1, totalPages] so "previous" at page 1 and
// "next" at the last page are no-ops for callers that pass page±1 blindly.
func paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}
}
