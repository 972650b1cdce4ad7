package domain

import (
	"strings"
	"time"
)

// Employee is an HR record. EmpID is the business identifier and drives the
// derived storage folder name; UserID is the row identifier.
type Employee struct {
	UserID     string    `json:"user_id"`
	EmpID      string    `json:"emp_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
}

// FolderName derives the storage folder for this employee's documents.
// Every non-alphanumeric byte in EmpID collapses to '_' and the result is
// lower-cased, so "EMP-007!" becomes "employee_emp_007_".
func (e Employee) FolderName() string {
	return "employee_" + sanitizeID(e.EmpID)
}

func sanitizeID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
