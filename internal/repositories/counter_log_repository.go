package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"sda-backend/internal/models"
)

type CounterLogRepository struct {
	DB *pgxpool.Pool
}

func NewCounterLogRepository(db *pgxpool.Pool) *CounterLogRepository {
	return &CounterLogRepository{DB: db}
}

func (r *CounterLogRepository) GetAll(ctx context.Context) ([]models.CounterLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, date, ts, category, products, brands, note, has_purchased
         FROM counter_logs ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCounterLogs(rows)
}

func (r *CounterLogRepository) GetByDate(ctx context.Context, date string) ([]models.CounterLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, date, ts, category, products, brands, note, has_purchased
         FROM counter_logs WHERE date=$1 ORDER BY ts DESC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCounterLogs(rows)
}

func collectCounterLogs(rows pgx.Rows) ([]models.CounterLog, error) {
	var logs []models.CounterLog
	for rows.Next() {
		var l models.CounterLog
		if err := rows.Scan(&l.ID, &l.Date, &l.Timestamp, &l.Category, &l.Products,
			&l.Brands, &l.Note, &l.HasPurchased); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Create inserts a log at the head of the stored order
func (r *CounterLogRepository) Create(ctx context.Context, l *models.CounterLog) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE counter_logs SET position = position + 1`); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO counter_logs(id, date, ts, category, products, brands, note, has_purchased, position)
         VALUES($1,$2,$3,$4,$5,$6,$7,$8,0)`,
		l.ID, l.Date, l.Timestamp, l.Category, l.Products, l.Brands, l.Note, l.HasPurchased); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *CounterLogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM counter_logs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ReplaceAll swaps the whole collection in one transaction
func (r *CounterLogRepository) ReplaceAll(ctx context.Context, logs []models.CounterLog) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM counter_logs`); err != nil {
		return err
	}
	for i, l := range logs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO counter_logs(id, date, ts, category, products, brands, note, has_purchased, position)
             VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			l.ID, l.Date, l.Timestamp, l.Category, l.Products, l.Brands, l.Note, l.HasPurchased, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
