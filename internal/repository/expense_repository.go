package repository

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gastobot/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS expenses (
	id UUID PRIMARY KEY,
	chat_id BIGINT NOT NULL,
	amount NUMERIC(12,2) NOT NULL,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	date DATE NOT NULL,
	month INT NOT NULL,
	year INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expenses_chat_period ON expenses (chat_id, year, month);
`

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the expenses table on startup if it does not exist.
func (r *ExpenseRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

func (r *ExpenseRepository) Insert(ctx context.Context, rec *models.ExpenseRecord) error {
	query := squirrel.Insert("expenses").
		Columns("id", "chat_id", "amount", "description", "category", "date", "month", "year", "created_at").
		Values(rec.ID, rec.ChatID, rec.Amount, rec.Description, rec.Category, rec.Date, rec.Month, rec.Year, rec.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Query returns records matching the filter, ordered by date ascending.
// Category matching is case-insensitive; zero month/year match any period.
func (r *ExpenseRepository) Query(ctx context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error) {
	sql, args, err := buildQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ExpenseRecord
	for rows.Next() {
		var rec models.ExpenseRecord
		if err := rows.Scan(
			&rec.ID, &rec.ChatID, &rec.Amount, &rec.Description, &rec.Category,
			&rec.Date, &rec.Month, &rec.Year, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func buildQuery(filter models.ExpenseFilter) squirrel.SelectBuilder {
	query := squirrel.Select("id", "chat_id", "amount", "description", "category", "date", "month", "year", "created_at").
		From("expenses").
		Where(squirrel.Eq{"chat_id": filter.ChatID}).
		OrderBy("date ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Month != 0 {
		query = query.Where(squirrel.Eq{"month": filter.Month})
	}
	if filter.Year != 0 {
		query = query.Where(squirrel.Eq{"year": filter.Year})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.ILike{"category": escapeLike(string(filter.Category))})
	}

	return query
}

// escapeLike neutralizes LIKE wildcards so a user-supplied category matches
// literally instead of acting as a pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
