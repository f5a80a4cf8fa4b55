package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

type tradeRepoStub struct {
	trades   map[string]*models.ShiftTrade
	accepted string
	resolved models.TradeStatus
}

func (s *tradeRepoStub) Create(ctx context.Context, trade *models.ShiftTrade) error {
	trade.ID = "trade-1"
	if s.trades == nil {
		s.trades = make(map[string]*models.ShiftTrade)
	}
	s.trades[trade.ID] = trade
	return nil
}

func (s *tradeRepoStub) FindByID(ctx context.Context, id string) (*models.ShiftTrade, error) {
	trade, ok := s.trades[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *trade
	return &clone, nil
}

func (s *tradeRepoStub) List(ctx context.Context, status *models.TradeStatus, employeeID string) ([]models.TradeDetail, error) {
	return nil, nil
}

func (s *tradeRepoStub) Accept(ctx context.Context, id, toEmployeeID string) error {
	s.accepted = toEmployeeID
	if trade, ok := s.trades[id]; ok {
		trade.ToEmployeeID = &toEmployeeID
		trade.Status = models.TradeStatusAccepted
	}
	return nil
}

func (s *tradeRepoStub) Resolve(ctx context.Context, exec sqlx.ExtContext, id string, status models.TradeStatus, resolvedBy string) error {
	s.resolved = status
	if trade, ok := s.trades[id]; ok {
		trade.Status = status
		trade.ResolvedBy = &resolvedBy
	}
	return nil
}

type tradeShiftStub struct {
	shift      *models.Shift
	existing   []models.Shift
	reassigned string
}

func (s *tradeShiftStub) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	if s.shift == nil {
		return nil, sql.ErrNoRows
	}
	return s.shift, nil
}

func (s *tradeShiftStub) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Shift, error) {
	return s.existing, nil
}

func (s *tradeShiftStub) ReassignEmployee(ctx context.Context, exec sqlx.ExtContext, shiftID, employeeID string) error {
	s.reassigned = employeeID
	return nil
}

func futureShift() *models.Shift {
	return &models.Shift{
		ID:         "sh-1",
		ScheduleID: "sched-1",
		EmployeeID: "e1",
		StartTime:  time.Now().UTC().Add(48 * time.Hour),
		EndTime:    time.Now().UTC().Add(56 * time.Hour),
		Status:     models.ShiftStatusApproved,
	}
}

func TestTradeServiceOffer(t *testing.T) {
	repo := &tradeRepoStub{}
	shifts := &tradeShiftStub{shift: futureShift()}
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(repo, shifts, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	trade, err := svc.Offer(context.Background(), "e1", dto.CreateTradeRequest{ShiftID: "sh-1", Reason: "appointment"})
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusPending, trade.Status)
	assert.Equal(t, "e1", trade.FromEmployeeID)
	require.NotNil(t, trade.Reason)
	assert.Equal(t, "appointment", *trade.Reason)
}

func TestTradeServiceOfferNotOwner(t *testing.T) {
	shifts := &tradeShiftStub{shift: futureShift()}
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(&tradeRepoStub{}, shifts, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	_, err := svc.Offer(context.Background(), "e2", dto.CreateTradeRequest{ShiftID: "sh-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestTradeServiceOfferPastShift(t *testing.T) {
	past := futureShift()
	past.StartTime = time.Now().UTC().Add(-24 * time.Hour)
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(&tradeRepoStub{}, &tradeShiftStub{shift: past}, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	_, err := svc.Offer(context.Background(), "e1", dto.CreateTradeRequest{ShiftID: "sh-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestTradeServiceAccept(t *testing.T) {
	repo := &tradeRepoStub{trades: map[string]*models.ShiftTrade{"trade-1": {
		ID: "trade-1", ShiftID: "sh-1", FromEmployeeID: "e1", Status: models.TradeStatusPending,
	}}}
	shifts := &tradeShiftStub{shift: futureShift()}
	acceptor := activeEmployee()
	acceptor.ID = "e2"
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(repo, shifts, employeeByIDStub{employee: acceptor}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	trade, err := svc.Accept(context.Background(), "trade-1", "e2")
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusAccepted, trade.Status)
	assert.Equal(t, "e2", repo.accepted)
}

func TestTradeServiceAcceptOwnTrade(t *testing.T) {
	repo := &tradeRepoStub{trades: map[string]*models.ShiftTrade{"trade-1": {
		ID: "trade-1", ShiftID: "sh-1", FromEmployeeID: "e1", Status: models.TradeStatusPending,
	}}}
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(repo, &tradeShiftStub{shift: futureShift()}, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	_, err := svc.Accept(context.Background(), "trade-1", "e1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTradeServiceAcceptNonPending(t *testing.T) {
	repo := &tradeRepoStub{trades: map[string]*models.ShiftTrade{"trade-1": {
		ID: "trade-1", ShiftID: "sh-1", FromEmployeeID: "e1", Status: models.TradeStatusRejected,
	}}}
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(repo, &tradeShiftStub{shift: futureShift()}, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	_, err := svc.Accept(context.Background(), "trade-1", "e2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTradeNotActionable.Code, appErrors.FromError(err).Code)
}

func TestTradeServiceAcceptConflict(t *testing.T) {
	shift := futureShift()
	repo := &tradeRepoStub{trades: map[string]*models.ShiftTrade{"trade-1": {
		ID: "trade-1", ShiftID: "sh-1", FromEmployeeID: "e1", Status: models.TradeStatusPending,
	}}}
	shifts := &tradeShiftStub{shift: shift, existing: []models.Shift{{
		ID:        "sh-mine",
		StartTime: shift.StartTime.Add(-time.Hour),
		EndTime:   shift.EndTime,
		Status:    models.ShiftStatusApproved,
	}}}
	acceptor := activeEmployee()
	acceptor.ID = "e2"
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(repo, shifts, employeeByIDStub{employee: acceptor}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	_, err := svc.Accept(context.Background(), "trade-1", "e2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestTradeServiceApproveReassignsShift(t *testing.T) {
	to := "e2"
	repo := &tradeRepoStub{trades: map[string]*models.ShiftTrade{"trade-1": {
		ID: "trade-1", ShiftID: "sh-1", FromEmployeeID: "e1", ToEmployeeID: &to, Status: models.TradeStatusAccepted,
	}}}
	shifts := &tradeShiftStub{shift: futureShift()}
	tx, mock := newTxProviderMock(t)
	cache := newCacheStub()
	svc := NewTradeService(repo, shifts, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, cache, tx, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	trade, err := svc.Resolve(context.Background(), "trade-1", "mgr-1", dto.ResolveTradeRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusApproved, trade.Status)
	assert.Equal(t, "e2", shifts.reassigned)
	assert.Equal(t, 1, cache.deletes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTradeServiceRejectLeavesShift(t *testing.T) {
	to := "e2"
	repo := &tradeRepoStub{trades: map[string]*models.ShiftTrade{"trade-1": {
		ID: "trade-1", ShiftID: "sh-1", FromEmployeeID: "e1", ToEmployeeID: &to, Status: models.TradeStatusAccepted,
	}}}
	shifts := &tradeShiftStub{shift: futureShift()}
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(repo, shifts, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	trade, err := svc.Resolve(context.Background(), "trade-1", "mgr-1", dto.ResolveTradeRequest{Approve: false})
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusRejected, trade.Status)
	assert.Empty(t, shifts.reassigned)
}

func TestTradeServiceResolvePendingTrade(t *testing.T) {
	repo := &tradeRepoStub{trades: map[string]*models.ShiftTrade{"trade-1": {
		ID: "trade-1", ShiftID: "sh-1", FromEmployeeID: "e1", Status: models.TradeStatusPending,
	}}}
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(repo, &tradeShiftStub{shift: futureShift()}, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	_, err := svc.Resolve(context.Background(), "trade-1", "mgr-1", dto.ResolveTradeRequest{Approve: true})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTradeNotActionable.Code, appErrors.FromError(err).Code)
}

func TestTradeServiceCancelByOfferer(t *testing.T) {
	repo := &tradeRepoStub{trades: map[string]*models.ShiftTrade{"trade-1": {
		ID: "trade-1", ShiftID: "sh-1", FromEmployeeID: "e1", Status: models.TradeStatusPending,
	}}}
	tx, _ := newTxProviderMock(t)
	svc := NewTradeService(repo, &tradeShiftStub{shift: futureShift()}, employeeByIDStub{employee: activeEmployee()}, scheduleByIDStub{schedule: weekOfMarch2()}, newCacheStub(), tx, nil, nil)

	trade, err := svc.Cancel(context.Background(), "trade-1", "e1")
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusCanceled, trade.Status)

	_, err = svc.Cancel(context.Background(), "trade-1", "e2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
