package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shiftline/rota-api/internal/models"
)

// TradeRepository manages persistence for shift trade requests.
type TradeRepository struct {
	db *sqlx.DB
}

// NewTradeRepository constructs a TradeRepository.
func NewTradeRepository(db *sqlx.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create opens a new trade request in Pending state.
func (r *TradeRepository) Create(ctx context.Context, trade *models.ShiftTrade) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	if trade.Status == "" {
		trade.Status = models.TradeStatusPending
	}
	now := time.Now().UTC()
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = now
	}
	trade.UpdatedAt = now

	const query = `INSERT INTO shift_trades (id, shift_id, from_employee_id, to_employee_id, status, reason, resolved_by, created_at, updated_at)
		VALUES (:id, :shift_id, :from_employee_id, :to_employee_id, :status, :reason, :resolved_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, trade); err != nil {
		return fmt.Errorf("create trade: %w", err)
	}
	return nil
}

// FindByID fetches a trade by ID.
func (r *TradeRepository) FindByID(ctx context.Context, id string) (*models.ShiftTrade, error) {
	const query = `SELECT id, shift_id, from_employee_id, to_employee_id, status, reason, resolved_by, created_at, updated_at FROM shift_trades WHERE id = $1`
	var trade models.ShiftTrade
	if err := r.db.GetContext(ctx, &trade, query, id); err != nil {
		return nil, err
	}
	return &trade, nil
}

// List returns trades with shift and employee context, optionally filtered
// by status or participating employee.
func (r *TradeRepository) List(ctx context.Context, status *models.TradeStatus, employeeID string) ([]models.TradeDetail, error) {
	base := `SELECT t.id, t.shift_id, t.from_employee_id, t.to_employee_id, t.status, t.reason, t.resolved_by, t.created_at, t.updated_at,
	sh.start_time AS shift_start, sh.end_time AS shift_end,
	fe.full_name AS from_employee, te.full_name AS to_employee
FROM shift_trades t
JOIN shifts sh ON sh.id = t.shift_id
JOIN employees fe ON fe.id = t.from_employee_id
LEFT JOIN employees te ON te.id = t.to_employee_id
WHERE 1=1`
	var conditions []string
	var args []interface{}
	if status != nil {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)+1))
		args = append(args, *status)
	}
	if employeeID != "" {
		conditions = append(conditions, fmt.Sprintf("(t.from_employee_id = $%d OR t.to_employee_id = $%d)", len(args)+1, len(args)+1))
		args = append(args, employeeID)
	}
	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	var trades []models.TradeDetail
	if err := r.db.SelectContext(ctx, &trades, query, args...); err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}

// Accept records the claiming employee and moves the trade to Accepted.
func (r *TradeRepository) Accept(ctx context.Context, id, toEmployeeID string) error {
	const query = `UPDATE shift_trades SET to_employee_id = $2, status = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, toEmployeeID, models.TradeStatusAccepted, time.Now().UTC()); err != nil {
		return fmt.Errorf("accept trade: %w", err)
	}
	return nil
}

// Resolve finalizes a trade as Approved, Rejected or Canceled.
func (r *TradeRepository) Resolve(ctx context.Context, exec sqlx.ExtContext, id string, status models.TradeStatus, resolvedBy string) error {
	const query = `UPDATE shift_trades SET status = $2, resolved_by = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.exec(exec).ExecContext(ctx, query, id, status, resolvedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("resolve trade: %w", err)
	}
	return nil
}
