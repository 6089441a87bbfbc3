package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
)

type userTableModel struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	IsAdmin   bool      `db:"is_admin"`
	CreatedAt time.Time `db:"created_at"`
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, email, name, is_admin, created_at FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	var row userTableModel
	err := r.db.GetContext(ctx, &row, `SELECT id, email, name, is_admin, created_at FROM users WHERE email = $1`, user.NormalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by email: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) UpsertByEmail(ctx context.Context, email, name string) (user.User, error) {
	query := `INSERT INTO users (email, name)
VALUES ($1, $2)
ON CONFLICT (email)
DO UPDATE SET name = CASE WHEN users.name = '' AND EXCLUDED.name <> '' THEN EXCLUDED.name ELSE users.name END
RETURNING id, email, name, is_admin, created_at`

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, user.NormalizeEmail(email), name); err != nil {
		return user.User{}, fmt.Errorf("upsert user by email: %w", err)
	}

	return userFromRow(row), nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, userID int64, isAdmin bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET is_admin = $2 WHERE id = $1`, userID, isAdmin)
	if err != nil {
		return fmt.Errorf("set admin user=%d: %w", userID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("set admin user=%d: no row", userID)
	}
	return nil
}

func (r *UserRepository) GetBySessionToken(ctx context.Context, token string, now time.Time) (user.User, bool, error) {
	query := `SELECT u.id, u.email, u.name, u.is_admin, u.created_at
FROM sessions s
JOIN users u ON u.id = s.user_id
WHERE s.token = $1 AND s.expires_at > $2`

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, token, now); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by session token: %w", err)
	}

	return userFromRow(row), true, nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		IsAdmin:   row.IsAdmin,
		CreatedAt: row.CreatedAt,
	}
}
