package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/entry"
)

type entryTableModel struct {
	ID         int64     `db:"id"`
	Email      string    `db:"email"`
	UserID     *int64    `db:"user_id"`
	TeamNumber int       `db:"team_number"`
	QBID       string    `db:"qb_player_id"`
	QBName     string    `db:"qb_player_name"`
	QBTeam     string    `db:"qb_player_team"`
	WRID       string    `db:"wr_player_id"`
	WRName     string    `db:"wr_player_name"`
	WRTeam     string    `db:"wr_player_team"`
	RBID       string    `db:"rb_player_id"`
	RBName     string    `db:"rb_player_name"`
	RBTeam     string    `db:"rb_player_team"`
	TEID       string    `db:"te_player_id"`
	TEName     string    `db:"te_player_name"`
	TETeam     string    `db:"te_player_team"`
	CreatedAt  time.Time `db:"created_at"`
}

const entrySelectColumns = `id, email, user_id, team_number,
qb_player_id, qb_player_name, qb_player_team,
wr_player_id, wr_player_name, wr_player_team,
rb_player_id, rb_player_name, rb_player_team,
te_player_id, te_player_name, te_player_team,
created_at`

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) ListAll(ctx context.Context) ([]entry.TeamEntry, error) {
	query := `SELECT ` + entrySelectColumns + ` FROM entries ORDER BY created_at DESC, id DESC`

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list all entries: %w", err)
	}

	return entriesFromRows(rows), nil
}

func (r *EntryRepository) ListByEmail(ctx context.Context, email string) ([]entry.TeamEntry, error) {
	query := `SELECT ` + entrySelectColumns + ` FROM entries WHERE lower(email) = lower($1) ORDER BY created_at DESC, id DESC`

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, email); err != nil {
		return nil, fmt.Errorf("list entries by email: %w", err)
	}

	return entriesFromRows(rows), nil
}

func (r *EntryRepository) Create(ctx context.Context, item entry.TeamEntry) (entry.TeamEntry, error) {
	query := `INSERT INTO entries (
email, user_id, team_number,
qb_player_id, qb_player_name, qb_player_team,
wr_player_id, wr_player_name, wr_player_team,
rb_player_id, rb_player_name, rb_player_team,
te_player_id, te_player_name, te_player_team,
created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING id`

	row := entryToRow(item)
	var id int64
	if err := r.db.QueryRowxContext(ctx, query,
		row.Email, row.UserID, row.TeamNumber,
		row.QBID, row.QBName, row.QBTeam,
		row.WRID, row.WRName, row.WRTeam,
		row.RBID, row.RBName, row.RBTeam,
		row.TEID, row.TEName, row.TETeam,
		row.CreatedAt,
	).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return entry.TeamEntry{}, entry.ErrDuplicateTeamNumber
		}
		return entry.TeamEntry{}, fmt.Errorf("insert entry: %w", err)
	}

	item.ID = id
	return item, nil
}

func (r *EntryRepository) Update(ctx context.Context, item entry.TeamEntry) (entry.TeamEntry, error) {
	query := `UPDATE entries SET
qb_player_id = $2, qb_player_name = $3, qb_player_team = $4,
wr_player_id = $5, wr_player_name = $6, wr_player_team = $7,
rb_player_id = $8, rb_player_name = $9, rb_player_team = $10,
te_player_id = $11, te_player_name = $12, te_player_team = $13
WHERE id = $1
RETURNING created_at`

	var createdAt time.Time
	if err := r.db.QueryRowxContext(ctx, query,
		item.ID,
		item.QB.ID, item.QB.Name, item.QB.Team,
		item.WR.ID, item.WR.Name, item.WR.Team,
		item.RB.ID, item.RB.Name, item.RB.Team,
		item.TE.ID, item.TE.Name, item.TE.Team,
	).Scan(&createdAt); err != nil {
		if isNotFound(err) {
			return entry.TeamEntry{}, fmt.Errorf("update entry id=%d: no row", item.ID)
		}
		return entry.TeamEntry{}, fmt.Errorf("update entry id=%d: %w", item.ID, err)
	}

	item.CreatedAt = createdAt
	return item, nil
}

func (r *EntryRepository) LinkUser(ctx context.Context, entryID, userID int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE entries SET user_id = $2 WHERE id = $1`, entryID, userID)
	if err != nil {
		return fmt.Errorf("link entry=%d to user=%d: %w", entryID, userID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("link entry=%d: no row", entryID)
	}
	return nil
}

func entriesFromRows(rows []entryTableModel) []entry.TeamEntry {
	out := make([]entry.TeamEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryFromRow(row))
	}
	return out
}

func entryFromRow(row entryTableModel) entry.TeamEntry {
	item := entry.TeamEntry{
		ID:         row.ID,
		Email:      row.Email,
		TeamNumber: row.TeamNumber,
		QB:         entry.PlayerPick{ID: row.QBID, Name: row.QBName, Team: row.QBTeam},
		WR:         entry.PlayerPick{ID: row.WRID, Name: row.WRName, Team: row.WRTeam},
		RB:         entry.PlayerPick{ID: row.RBID, Name: row.RBName, Team: row.RBTeam},
		TE:         entry.PlayerPick{ID: row.TEID, Name: row.TEName, Team: row.TETeam},
		CreatedAt:  row.CreatedAt,
	}
	if row.UserID != nil {
		item.UserID = *row.UserID
	}
	return item
}

func entryToRow(item entry.TeamEntry) entryTableModel {
	row := entryTableModel{
		Email:      item.NormalizedEmail(),
		TeamNumber: item.TeamNumber,
		QBID:       item.QB.ID,
		QBName:     item.QB.Name,
		QBTeam:     item.QB.Team,
		WRID:       item.WR.ID,
		WRName:     item.WR.Name,
		WRTeam:     item.WR.Team,
		RBID:       item.RB.ID,
		RBName:     item.RB.Name,
		RBTeam:     item.RB.Team,
		TEID:       item.TE.ID,
		TEName:     item.TE.Name,
		TETeam:     item.TE.Team,
		CreatedAt:  item.CreatedAt,
	}
	if item.UserID > 0 {
		userID := item.UserID
		row.UserID = &userID
	}
	return row
}
