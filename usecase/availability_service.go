package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/suaralabs/suara/domain"
	"github.com/suaralabs/suara/domain/repositories"
)

// AvailabilityService reports per-employee allocation for a practice and
// date range, backed by the planningboard directory.
type AvailabilityService struct {
	directory repositories.EmployeeDirectory
	logger    *zap.Logger
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(directory repositories.EmployeeDirectory, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		directory: directory,
		logger:    logger,
	}
}

// Check returns one allocation summary per employee in the practice for
// the given date range.
func (s *AvailabilityService) Check(ctx context.Context, practice, fromDate, toDate string) ([]domain.Allocation, error) {
	employees, err := s.directory.EmployeesByPractice(ctx, practice)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "planningboard", Err: err}
	}

	allocations := make([]domain.Allocation, 0, len(employees))
	for _, employee := range employees {
		allocation, err := s.directory.EmployeeAllocation(ctx, employee.ID, fromDate, toDate)
		if err != nil {
			return nil, &domain.UpstreamError{Service: "planningboard", Err: err}
		}
		allocation.Name = strings.TrimSpace(employee.Name + " " + employee.Surname)
		allocations = append(allocations, allocation)
	}

	s.logger.Info("Availability checked",
		zap.String("practice", practice),
		zap.Int("employees", len(allocations)))

	return allocations, nil
}

// CheckEmployee returns the allocation summary for a single employee
// looked up by full name. Matching is case-insensitive on "name surname".
func (s *AvailabilityService) CheckEmployee(ctx context.Context, name, fromDate, toDate string) (domain.Allocation, error) {
	employees, err := s.directory.Employees(ctx)
	if err != nil {
		return domain.Allocation{}, &domain.UpstreamError{Service: "planningboard", Err: err}
	}

	want := strings.ToLower(strings.TrimSpace(name))
	for _, employee := range employees {
		fullName := strings.TrimSpace(employee.Name + " " + employee.Surname)
		if strings.ToLower(fullName) != want {
			continue
		}

		allocation, err := s.directory.EmployeeAllocation(ctx, employee.ID, fromDate, toDate)
		if err != nil {
			return domain.Allocation{}, &domain.UpstreamError{Service: "planningboard", Err: err}
		}
		allocation.Name = fullName

		s.logger.Info("Employee availability checked",
			zap.String("employee", fullName),
			zap.Int("employeeID", employee.ID))

		return allocation, nil
	}

	return domain.Allocation{}, fmt.Errorf("no employee named %q", name)
}
