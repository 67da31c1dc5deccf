package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

func (r *PostgresUserRepository) SaveSweep(ctx context.Context, rec SweepRecord) (int, error) {
	var id int
	query := `INSERT INTO sweeps (user_id, kind, elements, exponent, step, count, best_conc, best_mpa, best_gpa, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	var points any
	if len(rec.Points) > 0 {
		points = string(rec.Points)
	}
	err := r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.Kind, pq.Array(rec.Elements), rec.Exponent, rec.Step, rec.Count,
		pq.Array(rec.BestConc), rec.BestMPa, rec.BestGPa, points,
	).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) ListSweeps(ctx context.Context, userID, limit int) ([]SweepRecord, error) {
	limit = clampLimit(limit)
	query := `SELECT id, user_id, kind, elements, exponent, step, count, best_conc, best_mpa, best_gpa, created_at
		FROM sweeps WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SweepRecord
	for rows.Next() {
		var rec SweepRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Kind, pq.Array(&rec.Elements), &rec.Exponent, &rec.Step,
			&rec.Count, pq.Array(&rec.BestConc), &rec.BestMPa, &rec.BestGPa, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) GetSweep(ctx context.Context, userID, id int) (SweepRecord, error) {
	query := `SELECT id, user_id, kind, elements, exponent, step, count, best_conc, best_mpa, best_gpa, points, created_at
		FROM sweeps WHERE user_id=$1 AND id=$2`
	var (
		rec    SweepRecord
		points []byte
	)
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(&rec.ID, &rec.UserID, &rec.Kind, pq.Array(&rec.Elements),
		&rec.Exponent, &rec.Step, &rec.Count, pq.Array(&rec.BestConc), &rec.BestMPa, &rec.BestGPa, &points, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SweepRecord{}, ErrNotFound
	}
	if err != nil {
		return SweepRecord{}, err
	}
	rec.Points = points
	return rec, nil
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxListLimit {
		return defaultListLimit
	}
	return limit
}
