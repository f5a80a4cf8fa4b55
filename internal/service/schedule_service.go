package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	"github.com/shiftline/rota-api/internal/scheduler"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

const defaultGridCacheTTL = 5 * time.Minute

type scheduleBranchReader interface {
	FindByID(ctx context.Context, id string) (*models.Branch, error)
}

type scheduleEmployeeReader interface {
	ListActiveByBranch(ctx context.Context, branchID string) ([]models.Employee, error)
}

type scheduleAvailabilityReader interface {
	ListByBranch(ctx context.Context, branchID string) ([]models.AvailabilitySlot, error)
}

type scheduleRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, schedule *models.Schedule) error
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	FindByBranchWeek(ctx context.Context, branchID string, weekStart time.Time) (*models.Schedule, error)
	ListByBranch(ctx context.Context, branchID string) ([]models.ScheduleSummary, error)
	Delete(ctx context.Context, id string) error
	GetSettings(ctx context.Context, scheduleID string) (*models.ScheduleSettings, error)
	UpsertSettings(ctx context.Context, exec sqlx.ExtContext, settings *models.ScheduleSettings) error
	ListTemplates(ctx context.Context) ([]models.SettingsTemplate, error)
	FindTemplate(ctx context.Context, id string) (*models.SettingsTemplate, error)
	CreateTemplate(ctx context.Context, tmpl *models.SettingsTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
}

type scheduleShiftStore interface {
	BulkInsert(ctx context.Context, exec sqlx.ExtContext, shifts []models.Shift) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ShiftDetail, error)
}

type shiftGenerator interface {
	Generate(in scheduler.Input) (*scheduler.Result, error)
}

type gridCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// ScheduleServiceConfig tunes runtime behaviour of the service.
type ScheduleServiceConfig struct {
	GridCacheTTL time.Duration
}

// ScheduleService orchestrates schedule generation and management: it
// assembles the generation snapshot, runs the solver, and materializes the
// outcome inside a single transaction.
type ScheduleService struct {
	branches     scheduleBranchReader
	employees    scheduleEmployeeReader
	availability scheduleAvailabilityReader
	schedules    scheduleRepository
	shifts       scheduleShiftStore
	engine       shiftGenerator
	cache        gridCache
	db           txProvider
	validator    *validator.Validate
	logger       *zap.Logger
	gridTTL      time.Duration
}

// NewScheduleService wires the schedule orchestration service.
func NewScheduleService(
	branches scheduleBranchReader,
	employees scheduleEmployeeReader,
	availability scheduleAvailabilityReader,
	schedules scheduleRepository,
	shifts scheduleShiftStore,
	engine shiftGenerator,
	cache gridCache,
	db txProvider,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ScheduleServiceConfig,
) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	ttl := cfg.GridCacheTTL
	if ttl <= 0 {
		ttl = defaultGridCacheTTL
	}
	return &ScheduleService{
		branches:     branches,
		employees:    employees,
		availability: availability,
		schedules:    schedules,
		shifts:       shifts,
		engine:       engine,
		cache:        cache,
		db:           db,
		validator:    validate,
		logger:       logger,
		gridTTL:      ttl,
	}
}

// Generate produces and persists one week of shifts for a branch. The run is
// all-or-nothing: the schedule row, its settings and every shift commit in
// one transaction or not at all.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation request")
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "weekStart must be a date in YYYY-MM-DD form")
	}
	weekStart = weekStart.UTC()
	if weekStart.Weekday() != time.Monday {
		return nil, appErrors.Clone(appErrors.ErrValidation, "weekStart must be a Monday")
	}

	branch, err := s.branches.FindByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "branch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load branch")
	}
	if !branch.Active {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "branch is inactive")
	}

	if _, err := s.schedules.FindByBranchWeek(ctx, req.BranchID, weekStart); err == nil {
		return nil, appErrors.Clone(appErrors.ErrScheduleExists,
			fmt.Sprintf("branch %s already has a schedule for the week of %s", req.BranchID, req.WeekStart))
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing schedule")
	}

	settings, err := s.resolveSettings(ctx, req)
	if err != nil {
		return nil, err
	}
	profile, err := profileFromSettings(settings)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidConstraints.Code, appErrors.ErrInvalidConstraints.Status, err.Error())
	}

	roster, err := s.employees.ListActiveByBranch(ctx, req.BranchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employees")
	}
	if len(roster) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoEligibleEmployees, "")
	}

	slots, err := s.availability.ListByBranch(ctx, req.BranchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}

	input := scheduler.Input{
		Employees:    make([]scheduler.Employee, 0, len(roster)),
		Availability: make([]scheduler.AvailabilityEntry, 0, len(slots)),
		Profile:      profile,
		WeekStart:    weekStart,
	}
	for _, e := range roster {
		input.Employees = append(input.Employees, scheduler.Employee{ID: e.ID, Name: e.FullName})
	}
	for _, sl := range slots {
		input.Availability = append(input.Availability, scheduler.AvailabilityEntry{
			EmployeeID: sl.EmployeeID,
			Day:        sl.DayOfWeek,
			Start:      sl.StartTime,
			End:        sl.EndTime,
		})
	}

	result, err := s.engine.Generate(input)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrNoEmployees):
			return nil, appErrors.Clone(appErrors.ErrNoEligibleEmployees, "")
		case errors.Is(err, scheduler.ErrNoAvailability):
			return nil, appErrors.Clone(appErrors.ErrNoAvailabilityData, "")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidConstraints.Code, appErrors.ErrInvalidConstraints.Status, err.Error())
		}
	}

	assignments := result.Assignments
	fallbackUsed := false
	if len(assignments) == 0 {
		assignments = fallbackAssignments(profile, input.Employees, weekStart)
		fallbackUsed = true
		s.logger.Warn("no availability-driven assignments; falling back to default shifts",
			zap.String("branch_id", req.BranchID),
			zap.Int("employees", len(input.Employees)))
	}

	schedule := &models.Schedule{BranchID: req.BranchID, WeekStart: weekStart}
	if req.Name != "" {
		schedule.Name = &req.Name
	}

	shifts := make([]models.Shift, 0, len(assignments))
	for _, a := range assignments {
		dayStart := weekStart.AddDate(0, 0, a.Day)
		shifts = append(shifts, models.Shift{
			EmployeeID: a.EmployeeID,
			StartTime:  dayStart.Add(time.Duration(a.Start) * time.Hour),
			EndTime:    dayStart.Add(time.Duration(a.End) * time.Hour),
			Status:     models.ShiftStatusApproved,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Warn("failed to roll back generation transaction", zap.Error(rbErr))
			}
		}
	}()

	if err = s.schedules.Create(ctx, tx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}
	settings.ScheduleID = schedule.ID
	if err = s.schedules.UpsertSettings(ctx, tx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule settings")
	}
	for i := range shifts {
		shifts[i].ScheduleID = schedule.ID
	}
	if err = s.shifts.BulkInsert(ctx, tx, shifts); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store shifts")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule")
	}

	s.invalidateGrid(ctx, schedule.ID)

	resp := &dto.GenerateScheduleResponse{
		ScheduleID:    schedule.ID,
		ShiftsCreated: len(shifts),
		Coverage:      result.Coverage,
		RepairPasses:  result.RepairPasses,
		FallbackUsed:  fallbackUsed,
	}
	for _, v := range result.Unresolved {
		resp.Unresolved = append(resp.Unresolved, fmt.Sprintf("%s: employee %s", v.Type, v.EmployeeID))
	}
	if fallbackUsed {
		resp.Message = fmt.Sprintf("no availability-driven assignments were possible; %d default shifts were created instead", len(shifts))
	} else {
		resp.Message = fmt.Sprintf("schedule generated with %d shifts (%.0f%% slot coverage)", len(shifts), result.Coverage*100)
	}

	s.logger.Info("schedule persisted",
		zap.String("schedule_id", schedule.ID),
		zap.String("branch_id", req.BranchID),
		zap.Time("week_start", weekStart),
		zap.Int("shifts", len(shifts)),
		zap.Bool("fallback", fallbackUsed))
	return resp, nil
}

// List returns schedule summaries for a branch, newest first.
func (s *ScheduleService) List(ctx context.Context, branchID string) ([]models.ScheduleSummary, error) {
	if branchID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "branchId is required")
	}
	summaries, err := s.schedules.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return summaries, nil
}

// Get fetches a schedule together with its shifts.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, []models.ShiftDetail, error) {
	schedule, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	shifts, err := s.shifts.ListBySchedule(ctx, id)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shifts")
	}
	return schedule, shifts, nil
}

// Delete removes a schedule and, through the cascade, its shifts.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	s.invalidateGrid(ctx, id)
	return nil
}

// GetGrid renders the weekly display grid for a schedule, served from cache
// when a fresh copy exists. The bool reports whether the cache was hit.
func (s *ScheduleService) GetGrid(ctx context.Context, id string) (*dto.ScheduleGridResponse, bool, error) {
	key := gridCacheKey(id)
	if s.cache != nil {
		var cached dto.ScheduleGridResponse
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("grid cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	schedule, shifts, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	grid := renderGrid(schedule, shifts)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, grid, s.gridTTL); err != nil {
			s.logger.Warn("grid cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return grid, false, nil
}

// GetSettings returns the constraint settings stored with a schedule.
func (s *ScheduleService) GetSettings(ctx context.Context, scheduleID string) (*models.ScheduleSettings, error) {
	settings, err := s.schedules.GetSettings(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule settings not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule settings")
	}
	return settings, nil
}

// UpdateSettings rewrites the settings stored with a schedule. This changes
// what a future regeneration would use; existing shifts are untouched.
func (s *ScheduleService) UpdateSettings(ctx context.Context, scheduleID string, req dto.ScheduleSettingsRequest) (*models.ScheduleSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings")
	}
	if _, err := s.schedules.FindByID(ctx, scheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	settings := defaultSettings()
	applyOverrides(settings, &req)
	settings.ScheduleID = scheduleID
	if _, err := profileFromSettings(settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidConstraints.Code, appErrors.ErrInvalidConstraints.Status, err.Error())
	}
	if err := s.schedules.UpsertSettings(ctx, nil, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule settings")
	}
	s.invalidateGrid(ctx, scheduleID)
	return settings, nil
}

// ListTemplates returns all reusable settings templates.
func (s *ScheduleService) ListTemplates(ctx context.Context) ([]models.SettingsTemplate, error) {
	templates, err := s.schedules.ListTemplates(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list templates")
	}
	return templates, nil
}

// CreateTemplate stores a named constraint profile for reuse across runs.
func (s *ScheduleService) CreateTemplate(ctx context.Context, req dto.SettingsTemplateRequest) (*models.SettingsTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template")
	}
	settings := defaultSettings()
	applyOverrides(settings, &req.Settings)
	if _, err := profileFromSettings(settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidConstraints.Code, appErrors.ErrInvalidConstraints.Status, err.Error())
	}

	tmpl := &models.SettingsTemplate{
		Name:                 req.Name,
		StartTime:            settings.StartTime,
		EndTime:              settings.EndTime,
		MinShiftLength:       settings.MinShiftLength,
		MaxShiftLength:       settings.MaxShiftLength,
		ShiftIncrement:       settings.ShiftIncrement,
		MinShiftsPerEmployee: settings.MinShiftsPerEmployee,
		MaxShiftsPerEmployee: settings.MaxShiftsPerEmployee,
		MaxEmployeesPerShift: settings.MaxEmployeesPerShift,
		MinRestHours:         settings.MinRestHours,
		Days:                 settings.Days,
	}
	if err := s.schedules.CreateTemplate(ctx, tmpl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store template")
	}
	return tmpl, nil
}

// DeleteTemplate removes a settings template.
func (s *ScheduleService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.schedules.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	return nil
}

// resolveSettings layers the effective settings for a run: documented
// defaults, then the named template if any, then request overrides.
func (s *ScheduleService) resolveSettings(ctx context.Context, req dto.GenerateScheduleRequest) (*models.ScheduleSettings, error) {
	settings := defaultSettings()

	if req.TemplateID != "" {
		tmpl, err := s.schedules.FindTemplate(ctx, req.TemplateID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "settings template not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
		}
		settings.Days = tmpl.Days
		settings.StartTime = tmpl.StartTime
		settings.EndTime = tmpl.EndTime
		settings.MinShiftLength = tmpl.MinShiftLength
		settings.MaxShiftLength = tmpl.MaxShiftLength
		settings.ShiftIncrement = tmpl.ShiftIncrement
		settings.MinShiftsPerEmployee = tmpl.MinShiftsPerEmployee
		settings.MaxShiftsPerEmployee = tmpl.MaxShiftsPerEmployee
		settings.MaxEmployeesPerShift = tmpl.MaxEmployeesPerShift
		settings.MinRestHours = tmpl.MinRestHours
	}

	applyOverrides(settings, req.Settings)
	return settings, nil
}

// defaultSettings is the boundary where unset minimums get their documented
// defaults. Callers who genuinely want zero say so in the request.
func defaultSettings() *models.ScheduleSettings {
	return &models.ScheduleSettings{
		Days:                 []int{0, 1, 2, 3, 4, 5, 6},
		StartTime:            "07:00",
		EndTime:              "23:00",
		MinShiftLength:       scheduler.DefaultMinShiftLength,
		MaxShiftLength:       scheduler.DefaultMaxShiftLength,
		ShiftIncrement:       scheduler.DefaultShiftIncrement,
		MinShiftsPerEmployee: scheduler.DefaultMinShiftsPerEmployee,
		MaxShiftsPerEmployee: scheduler.DefaultMaxShiftsPerEmployee,
		MaxEmployeesPerShift: scheduler.DefaultMaxEmployeesPerShift,
		MinRestHours:         scheduler.DefaultMinRestHours,
	}
}

// applyOverrides copies the set fields of a request onto the settings. The
// two minimums are pointer fields so an explicit zero overrides while an
// absent field keeps the default.
func applyOverrides(settings *models.ScheduleSettings, req *dto.ScheduleSettingsRequest) {
	if req == nil {
		return
	}
	if len(req.ActiveDays) > 0 {
		settings.Days = req.ActiveDays
	}
	if req.StartTime != "" {
		settings.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		settings.EndTime = req.EndTime
	}
	if req.MinShiftLength > 0 {
		settings.MinShiftLength = req.MinShiftLength
	}
	if req.MaxShiftLength > 0 {
		settings.MaxShiftLength = req.MaxShiftLength
	}
	if req.ShiftIncrement > 0 {
		settings.ShiftIncrement = req.ShiftIncrement
	}
	if req.MinShiftsPerEmployee != nil {
		settings.MinShiftsPerEmployee = *req.MinShiftsPerEmployee
	}
	if req.MaxShiftsPerEmployee > 0 {
		settings.MaxShiftsPerEmployee = req.MaxShiftsPerEmployee
	}
	if req.MaxEmployeesPerShift > 0 {
		settings.MaxEmployeesPerShift = req.MaxEmployeesPerShift
	}
	if req.MinRestHours != nil {
		settings.MinRestHours = *req.MinRestHours
	}
	if req.Notes != "" {
		settings.Notes = &req.Notes
	}
}

// profileFromSettings converts stored settings into a validated solver
// profile. Clock strings round inward to whole hours.
func profileFromSettings(settings *models.ScheduleSettings) (scheduler.Profile, error) {
	start, end, err := scheduler.ParseWindow(settings.StartTime, settings.EndTime)
	if err != nil {
		return scheduler.Profile{}, fmt.Errorf("operating window: %w", err)
	}
	p := scheduler.Profile{
		ActiveDays:           settings.Days,
		StartHour:            start,
		EndHour:              end,
		MinShiftLength:       settings.MinShiftLength,
		MaxShiftLength:       settings.MaxShiftLength,
		ShiftIncrement:       settings.ShiftIncrement,
		MinShiftsPerEmployee: settings.MinShiftsPerEmployee,
		MaxShiftsPerEmployee: settings.MaxShiftsPerEmployee,
		MaxEmployeesPerShift: settings.MaxEmployeesPerShift,
		MinRestHours:         settings.MinRestHours,
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return scheduler.Profile{}, err
	}
	return p, nil
}

// fallbackAssignments gives every employee one minimum-length shift at the
// opening hour of the first active day, so a week with no usable
// availability still produces a visible, editable schedule.
func fallbackAssignments(p scheduler.Profile, employees []scheduler.Employee, weekStart time.Time) []scheduler.Assignment {
	day := 0
	if len(p.ActiveDays) > 0 {
		day = p.ActiveDays[0]
	}
	end := p.StartHour + p.MinShiftLength
	if end > p.EndHour {
		end = p.EndHour
	}
	date := weekStart.AddDate(0, 0, day).Format("2006-01-02")
	out := make([]scheduler.Assignment, 0, len(employees))
	for _, e := range employees {
		out = append(out, scheduler.Assignment{
			EmployeeID: e.ID,
			Day:        day,
			Date:       date,
			Start:      p.StartHour,
			End:        end,
		})
	}
	return out
}

func gridCacheKey(scheduleID string) string {
	return "schedule:grid:" + scheduleID
}

func (s *ScheduleService) invalidateGrid(ctx context.Context, scheduleID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, gridCacheKey(scheduleID)); err != nil {
		s.logger.Warn("grid cache invalidation failed", zap.String("schedule_id", scheduleID), zap.Error(err))
	}
}

// renderGrid groups a schedule's shifts into day buckets for the week view.
func renderGrid(schedule *models.Schedule, shifts []models.ShiftDetail) *dto.ScheduleGridResponse {
	grid := &dto.ScheduleGridResponse{
		ScheduleID: schedule.ID,
		BranchID:   schedule.BranchID,
		WeekStart:  schedule.WeekStart,
		Days:       make([]dto.GridDay, 7),
	}
	for d := 0; d < 7; d++ {
		grid.Days[d] = dto.GridDay{
			Day:  d,
			Date: schedule.WeekStart.AddDate(0, 0, d).Format("2006-01-02"),
		}
	}
	for _, sh := range shifts {
		day := int(sh.StartTime.Sub(schedule.WeekStart).Hours()) / 24
		if day < 0 || day > 6 {
			continue
		}
		grid.Days[day].Shifts = append(grid.Days[day].Shifts, dto.GridShift{
			ShiftID:      sh.ID,
			EmployeeID:   sh.EmployeeID,
			EmployeeName: sh.EmployeeName,
			StartHour:    sh.StartTime.Hour(),
			EndHour:      endHourOf(sh),
			Status:       string(sh.Status),
		})
	}
	return grid
}

// endHourOf maps a shift ending at midnight to hour 24 so grid cells keep
// the day-local convention.
func endHourOf(sh models.ShiftDetail) int {
	h := sh.EndTime.Hour()
	if h == 0 && sh.EndTime.After(sh.StartTime) {
		return 24
	}
	return h
}
