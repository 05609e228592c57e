package repositories

import (
	"context"

	"github.com/suaralabs/suara/domain"
)

// EmployeeDirectory abstracts the planningboard upstream that knows who
// works where and how their time is allocated.
type EmployeeDirectory interface {
	Employees(ctx context.Context) ([]domain.Employee, error)
	// EmployeesByPractice returns the employees tagged with the given
	// practice. Matching is case-insensitive.
	EmployeesByPractice(ctx context.Context, practice string) ([]domain.Employee, error)
	// EmployeeAllocation returns the free/occupied summary for one
	// employee between fromDate and toDate (YYYY-MM-DD).
	EmployeeAllocation(ctx context.Context, employeeID int, fromDate, toDate string) (domain.Allocation, error)
}
