package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	"github.com/shiftline/rota-api/internal/scheduler"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

type availabilityRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]models.AvailabilitySlot, error)
	Replace(ctx context.Context, exec sqlx.ExtContext, employeeID string, slots []models.AvailabilitySlot) error
	Delete(ctx context.Context, id, employeeID string) error
}

type availabilityEmployeeReader interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
}

// AvailabilityService manages employee availability declarations.
type AvailabilityService struct {
	repo      availabilityRepository
	employees availabilityEmployeeReader
	db        txProvider
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs the availability service.
func NewAvailabilityService(repo availabilityRepository, employees availabilityEmployeeReader, db txProvider, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, employees: employees, db: db, validator: validate, logger: logger}
}

// List returns an employee's declared weekly windows.
func (s *AvailabilityService) List(ctx context.Context, employeeID string) ([]models.AvailabilitySlot, error) {
	if _, err := s.loadEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	slots, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return slots, nil
}

// Replace swaps an employee's full weekly availability atomically. An empty
// slot list is legal: it withdraws the employee from future generation runs.
func (s *AvailabilityService) Replace(ctx context.Context, employeeID string, req dto.ReplaceAvailabilityRequest) ([]models.AvailabilitySlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.Status != models.EmployeeStatusActive {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "employee is inactive")
	}

	slots := make([]models.AvailabilitySlot, 0, len(req.Slots))
	for i, sl := range req.Slots {
		if err := validateWindow(sl.StartTime, sl.EndTime); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("slot %d: %v", i, err))
		}
		slots = append(slots, models.AvailabilitySlot{
			EmployeeID: employeeID,
			DayOfWeek:  sl.DayOfWeek,
			StartTime:  sl.StartTime,
			EndTime:    sl.EndTime,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Warn("failed to roll back availability replace", zap.Error(rbErr))
			}
		}
	}()
	if err = s.repo.Replace(ctx, tx, employeeID, slots); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store availability")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit availability")
	}

	s.logger.Info("availability replaced",
		zap.String("employee_id", employeeID),
		zap.Int("slots", len(slots)))
	return slots, nil
}

// Delete removes a single slot, scoped to the owning employee.
func (s *AvailabilityService) Delete(ctx context.Context, id, employeeID string) error {
	if err := s.repo.Delete(ctx, id, employeeID); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "availability slot not found")
	}
	return nil
}

func (s *AvailabilityService) loadEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return employee, nil
}

// validateWindow rejects malformed or inverted windows at submission time.
// Sub-hour windows are accepted here and dropped by the solver's inward
// clamping later. Say "24:00" for midnight at the end of a day.
func validateWindow(start, end string) error {
	if _, _, err := scheduler.ParseWindow(start, end); err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("start %s must precede end %s", start, end)
	}
	return nil
}
