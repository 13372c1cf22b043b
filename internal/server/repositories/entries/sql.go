package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"impulselog/internal/common"
	"impulselog/internal/dbx"
	"impulselog/internal/server/models"
)

const entryColumns = `id, user_id, impulse_text, trigger_text, emotion, did_act, notes, created_at, updated_at`

// SQLRepository works over any dbx.DBTX; see the users repository for the
// dialect constraints it sticks to.
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, entry *models.ImpulseEntry) (*models.ImpulseEntry, error) {

	query :=
		`INSERT INTO impulse_entries (id, user_id, impulse_text, trigger_text, emotion, did_act, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.ImpulseText, entry.Trigger,
		entry.Emotion, entry.DidAct, entry.Notes, entry.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, userID int64, id string) (*models.ImpulseEntry, error) {
	query := `SELECT ` + entryColumns + `
		 FROM impulse_entries
		 WHERE id = $1 AND user_id = $2
		 `

	return scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *SQLRepository) List(ctx context.Context, userID int64, filter models.EntryFilter) ([]*models.ImpulseEntry, error) {

	var b strings.Builder
	b.WriteString(`SELECT ` + entryColumns + ` FROM impulse_entries WHERE user_id = $1`)

	args := []any{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		fmt.Fprintf(&b, " AND created_at >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		fmt.Fprintf(&b, " AND created_at <= $%d", len(args))
	}
	if filter.DidAct != "" {
		args = append(args, filter.DidAct)
		fmt.Fprintf(&b, " AND did_act = $%d", len(args))
	}

	b.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ImpulseEntry, 0)
	for rows.Next() {
		entry, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Update(ctx context.Context, entry *models.ImpulseEntry) (*models.ImpulseEntry, error) {
	query :=
		`UPDATE impulse_entries
		 SET impulse_text = $1, trigger_text = $2, emotion = $3, did_act = $4, notes = $5, updated_at = $6
		 WHERE id = $7 AND user_id = $8
		 `

	res, err := r.db.ExecContext(ctx, query,
		entry.ImpulseText, entry.Trigger, entry.Emotion, entry.DidAct,
		entry.Notes, entry.UpdatedAt, entry.ID, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return entry, nil
}

func (r *SQLRepository) Delete(ctx context.Context, userID int64, id string) error {
	query := `DELETE FROM impulse_entries WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row *sql.Row) (*models.ImpulseEntry, error) {
	entry, err := scanEntryRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return entry, nil
}

func scanEntryRow(row rowScanner) (*models.ImpulseEntry, error) {
	entry := &models.ImpulseEntry{}
	var updatedAt sql.NullTime

	err := row.Scan(&entry.ID, &entry.UserID, &entry.ImpulseText, &entry.Trigger,
		&entry.Emotion, &entry.DidAct, &entry.Notes, &entry.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		t := updatedAt.Time
		entry.UpdatedAt = &t
	}

	return entry, nil
}
