package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

type shiftRepository interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ShiftDetail, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Shift, error)
	FindByID(ctx context.Context, id string) (*models.Shift, error)
	Create(ctx context.Context, shift *models.Shift) error
	Update(ctx context.Context, shift *models.Shift) error
	Delete(ctx context.Context, id string) error
}

type shiftScheduleReader interface {
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
}

type shiftEmployeeReader interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
}

// ShiftService covers manual shift edits on top of generated schedules.
type ShiftService struct {
	repo      shiftRepository
	schedules shiftScheduleReader
	employees shiftEmployeeReader
	cache     gridCache
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShiftService constructs the shift service.
func NewShiftService(repo shiftRepository, schedules shiftScheduleReader, employees shiftEmployeeReader, cache gridCache, validate *validator.Validate, logger *zap.Logger) *ShiftService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftService{repo: repo, schedules: schedules, employees: employees, cache: cache, validator: validate, logger: logger}
}

// ListBySchedule returns a schedule's shifts with employee names.
func (s *ShiftService) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ShiftDetail, error) {
	shifts, err := s.repo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shifts")
	}
	return shifts, nil
}

// ListByEmployee returns an employee's shifts in a time range.
func (s *ShiftService) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Shift, error) {
	if !to.After(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "range end must be after range start")
	}
	shifts, err := s.repo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shifts")
	}
	return shifts, nil
}

// Get returns one shift.
func (s *ShiftService) Get(ctx context.Context, id string) (*models.Shift, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}
	return shift, nil
}

// Create adds a manual shift to a schedule. The shift must sit inside the
// schedule's week and must not overlap another shift of the same employee.
func (s *ShiftService) Create(ctx context.Context, req dto.CreateShiftRequest) (*models.Shift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift payload")
	}
	start, end, err := parseShiftWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	schedule, err := s.schedules.FindByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	weekEnd := schedule.WeekStart.AddDate(0, 0, 7)
	if start.Before(schedule.WeekStart) || end.After(weekEnd) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "shift must fall inside the schedule week")
	}

	employee, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	if employee.Status != models.EmployeeStatusActive {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "employee is inactive")
	}
	if employee.BranchID != schedule.BranchID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "employee belongs to a different branch")
	}

	if err := s.checkOverlap(ctx, req.EmployeeID, start, end, ""); err != nil {
		return nil, err
	}

	shift := &models.Shift{
		ScheduleID: req.ScheduleID,
		EmployeeID: req.EmployeeID,
		StartTime:  start,
		EndTime:    end,
		Status:     models.ShiftStatusPending,
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shift")
	}
	s.invalidateGrid(ctx, shift.ScheduleID)
	s.logger.Info("shift created",
		zap.String("shift_id", shift.ID),
		zap.String("schedule_id", shift.ScheduleID),
		zap.String("employee_id", shift.EmployeeID))
	return shift, nil
}

// Update changes a shift's window or status, re-running the overlap check
// against the employee's other shifts.
func (s *ShiftService) Update(ctx context.Context, id string, req dto.UpdateShiftRequest) (*models.Shift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift payload")
	}
	start, end, err := parseShiftWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	shift, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	schedule, err := s.schedules.FindByID(ctx, shift.ScheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	weekEnd := schedule.WeekStart.AddDate(0, 0, 7)
	if start.Before(schedule.WeekStart) || end.After(weekEnd) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "shift must fall inside the schedule week")
	}

	if err := s.checkOverlap(ctx, shift.EmployeeID, start, end, id); err != nil {
		return nil, err
	}

	shift.StartTime = start
	shift.EndTime = end
	if req.Status != "" {
		shift.Status = models.ShiftStatus(req.Status)
	}
	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shift")
	}
	s.invalidateGrid(ctx, shift.ScheduleID)
	return shift, nil
}

// Delete removes a shift.
func (s *ShiftService) Delete(ctx context.Context, id string) error {
	shift, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete shift")
	}
	s.invalidateGrid(ctx, shift.ScheduleID)
	return nil
}

// checkOverlap rejects a window that intersects any other non-canceled shift
// of the employee. excludeID skips the shift being edited.
func (s *ShiftService) checkOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) error {
	existing, err := s.repo.ListByEmployee(ctx, employeeID, start.AddDate(0, 0, -1), end.AddDate(0, 0, 1))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check shift conflicts")
	}
	for _, other := range existing {
		if other.ID == excludeID || other.Status == models.ShiftStatusCanceled {
			continue
		}
		if start.Before(other.EndTime) && other.StartTime.Before(end) {
			return appErrors.Clone(appErrors.ErrConflict,
				fmt.Sprintf("employee already has a shift from %s to %s",
					other.StartTime.Format(time.RFC3339), other.EndTime.Format(time.RFC3339)))
		}
	}
	return nil
}

func (s *ShiftService) invalidateGrid(ctx context.Context, scheduleID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, gridCacheKey(scheduleID)); err != nil {
		s.logger.Warn("grid cache invalidation failed", zap.String("schedule_id", scheduleID), zap.Error(err))
	}
}

// parseShiftWindow parses absolute RFC 3339 bounds for a manual shift.
func parseShiftWindow(start, end string) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("startTime must be RFC 3339: %w", err)
	}
	to, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("endTime must be RFC 3339: %w", err)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("endTime must be after startTime")
	}
	return from.UTC(), to.UTC(), nil
}
