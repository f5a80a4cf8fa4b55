package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

type tradeRepository interface {
	Create(ctx context.Context, trade *models.ShiftTrade) error
	FindByID(ctx context.Context, id string) (*models.ShiftTrade, error)
	List(ctx context.Context, status *models.TradeStatus, employeeID string) ([]models.TradeDetail, error)
	Accept(ctx context.Context, id, toEmployeeID string) error
	Resolve(ctx context.Context, exec sqlx.ExtContext, id string, status models.TradeStatus, resolvedBy string) error
}

type tradeShiftStore interface {
	FindByID(ctx context.Context, id string) (*models.Shift, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Shift, error)
	ReassignEmployee(ctx context.Context, exec sqlx.ExtContext, shiftID, employeeID string) error
}

type tradeEmployeeReader interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
}

type tradeScheduleReader interface {
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
}

// TradeService runs the shift trade workflow: an employee offers a shift,
// another accepts it, and a manager approves or rejects the swap.
type TradeService struct {
	repo      tradeRepository
	shifts    tradeShiftStore
	employees tradeEmployeeReader
	schedules tradeScheduleReader
	cache     gridCache
	db        txProvider
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTradeService constructs the trade service.
func NewTradeService(repo tradeRepository, shifts tradeShiftStore, employees tradeEmployeeReader, schedules tradeScheduleReader, cache gridCache, db txProvider, validate *validator.Validate, logger *zap.Logger) *TradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TradeService{repo: repo, shifts: shifts, employees: employees, schedules: schedules, cache: cache, db: db, validator: validate, logger: logger}
}

// List returns trades, optionally filtered by status or participant.
func (s *TradeService) List(ctx context.Context, status *models.TradeStatus, employeeID string) ([]models.TradeDetail, error) {
	trades, err := s.repo.List(ctx, status, employeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trades")
	}
	return trades, nil
}

// Get returns one trade.
func (s *TradeService) Get(ctx context.Context, id string) (*models.ShiftTrade, error) {
	trade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "trade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trade")
	}
	return trade, nil
}

// Offer opens a trade on one of the caller's own future shifts.
func (s *TradeService) Offer(ctx context.Context, fromEmployeeID string, req dto.CreateTradeRequest) (*models.ShiftTrade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trade payload")
	}
	shift, err := s.shifts.FindByID(ctx, req.ShiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}
	if shift.EmployeeID != fromEmployeeID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the assigned employee can offer a shift for trade")
	}
	if shift.Status == models.ShiftStatusCanceled {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "canceled shifts cannot be traded")
	}
	if !shift.StartTime.After(time.Now().UTC()) {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "past shifts cannot be traded")
	}

	trade := &models.ShiftTrade{
		ShiftID:        req.ShiftID,
		FromEmployeeID: fromEmployeeID,
		Status:         models.TradeStatusPending,
	}
	if req.Reason != "" {
		trade.Reason = &req.Reason
	}
	if err := s.repo.Create(ctx, trade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create trade")
	}
	s.logger.Info("trade offered",
		zap.String("trade_id", trade.ID),
		zap.String("shift_id", trade.ShiftID),
		zap.String("from_employee_id", fromEmployeeID))
	return trade, nil
}

// Accept claims a pending trade for another employee of the same branch. The
// claim only reserves the swap; the assignment moves on manager approval.
func (s *TradeService) Accept(ctx context.Context, id, toEmployeeID string) (*models.ShiftTrade, error) {
	trade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade.Status != models.TradeStatusPending {
		return nil, appErrors.Clone(appErrors.ErrTradeNotActionable, "only pending trades can be accepted")
	}
	if trade.FromEmployeeID == toEmployeeID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot accept your own trade")
	}

	shift, err := s.shifts.FindByID(ctx, trade.ShiftID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}
	acceptor, err := s.employees.FindByID(ctx, toEmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	if acceptor.Status != models.EmployeeStatusActive {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "employee is inactive")
	}
	schedule, err := s.schedules.FindByID(ctx, shift.ScheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if acceptor.BranchID != schedule.BranchID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "employee belongs to a different branch")
	}
	if err := s.checkAcceptorConflict(ctx, toEmployeeID, shift); err != nil {
		return nil, err
	}

	if err := s.repo.Accept(ctx, id, toEmployeeID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to accept trade")
	}
	trade.ToEmployeeID = &toEmployeeID
	trade.Status = models.TradeStatusAccepted
	s.logger.Info("trade accepted",
		zap.String("trade_id", id),
		zap.String("to_employee_id", toEmployeeID))
	return trade, nil
}

// Resolve is the manager decision on an accepted trade. Approval moves the
// shift to the accepting employee together with the status change, in one
// transaction.
func (s *TradeService) Resolve(ctx context.Context, id, resolvedBy string, req dto.ResolveTradeRequest) (*models.ShiftTrade, error) {
	trade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade.Status != models.TradeStatusAccepted {
		return nil, appErrors.Clone(appErrors.ErrTradeNotActionable, "only accepted trades can be resolved")
	}

	if !req.Approve {
		if err := s.repo.Resolve(ctx, nil, id, models.TradeStatusRejected, resolvedBy); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject trade")
		}
		trade.Status = models.TradeStatusRejected
		trade.ResolvedBy = &resolvedBy
		s.logger.Info("trade rejected", zap.String("trade_id", id), zap.String("resolved_by", resolvedBy))
		return trade, nil
	}

	shift, err := s.shifts.FindByID(ctx, trade.ShiftID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Warn("failed to roll back trade approval", zap.Error(rbErr))
			}
		}
	}()
	if err = s.repo.Resolve(ctx, tx, id, models.TradeStatusApproved, resolvedBy); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve trade")
	}
	if err = s.shifts.ReassignEmployee(ctx, tx, trade.ShiftID, *trade.ToEmployeeID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reassign shift")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit trade approval")
	}

	s.invalidateGrid(ctx, shift.ScheduleID)
	trade.Status = models.TradeStatusApproved
	trade.ResolvedBy = &resolvedBy
	s.logger.Info("trade approved",
		zap.String("trade_id", id),
		zap.String("shift_id", trade.ShiftID),
		zap.String("resolved_by", resolvedBy))
	return trade, nil
}

// Cancel withdraws a trade before it is resolved. Only the offering employee
// can cancel, and only while the trade is pending or accepted.
func (s *TradeService) Cancel(ctx context.Context, id, employeeID string) (*models.ShiftTrade, error) {
	trade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade.FromEmployeeID != employeeID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the offering employee can cancel a trade")
	}
	if trade.Status != models.TradeStatusPending && trade.Status != models.TradeStatusAccepted {
		return nil, appErrors.Clone(appErrors.ErrTradeNotActionable, "trade is already resolved")
	}
	if err := s.repo.Resolve(ctx, nil, id, models.TradeStatusCanceled, employeeID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel trade")
	}
	trade.Status = models.TradeStatusCanceled
	return trade, nil
}

// checkAcceptorConflict rejects an acceptance that would overlap one of the
// acceptor's own shifts.
func (s *TradeService) checkAcceptorConflict(ctx context.Context, employeeID string, shift *models.Shift) error {
	existing, err := s.shifts.ListByEmployee(ctx, employeeID, shift.StartTime.AddDate(0, 0, -1), shift.EndTime.AddDate(0, 0, 1))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check shift conflicts")
	}
	for _, other := range existing {
		if other.Status == models.ShiftStatusCanceled {
			continue
		}
		if shift.StartTime.Before(other.EndTime) && other.StartTime.Before(shift.EndTime) {
			return appErrors.Clone(appErrors.ErrConflict, "accepting this trade would overlap one of your shifts")
		}
	}
	return nil
}

func (s *TradeService) invalidateGrid(ctx context.Context, scheduleID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, gridCacheKey(scheduleID)); err != nil {
		s.logger.Warn("grid cache invalidation failed", zap.String("schedule_id", scheduleID), zap.Error(err))
	}
}
