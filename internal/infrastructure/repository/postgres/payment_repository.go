package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/payment"
)

type paymentTableModel struct {
	UserID    int64     `db:"user_id"`
	TeamsPaid int       `db:"teams_paid"`
	Notes     string    `db:"notes"`
	UpdatedAt time.Time `db:"updated_at"`
}

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]payment.Record, error) {
	var rows []paymentTableModel
	if err := r.db.SelectContext(ctx, &rows, `SELECT user_id, teams_paid, notes, updated_at FROM user_payments ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]payment.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, paymentFromRow(row))
	}
	return out, nil
}

func (r *PaymentRepository) GetByUser(ctx context.Context, userID int64) (payment.Record, bool, error) {
	var row paymentTableModel
	err := r.db.GetContext(ctx, &row, `SELECT user_id, teams_paid, notes, updated_at FROM user_payments WHERE user_id = $1`, userID)
	if err != nil {
		if isNotFound(err) {
			return payment.Record{}, false, nil
		}
		return payment.Record{}, false, fmt.Errorf("get payment by user: %w", err)
	}

	return paymentFromRow(row), true, nil
}

func (r *PaymentRepository) Upsert(ctx context.Context, item payment.Record) (payment.Record, error) {
	query := `INSERT INTO user_payments (user_id, teams_paid, notes, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id)
DO UPDATE SET teams_paid = EXCLUDED.teams_paid, notes = EXCLUDED.notes, updated_at = now()
RETURNING user_id, teams_paid, notes, updated_at`

	var row paymentTableModel
	if err := r.db.GetContext(ctx, &row, query, item.UserID, item.TeamsPaid, item.Notes); err != nil {
		return payment.Record{}, fmt.Errorf("upsert payment user=%d: %w", item.UserID, err)
	}

	return paymentFromRow(row), nil
}

func paymentFromRow(row paymentTableModel) payment.Record {
	return payment.Record{
		UserID:    row.UserID,
		TeamsPaid: row.TeamsPaid,
		Notes:     row.Notes,
		UpdatedAt: row.UpdatedAt,
	}
}
