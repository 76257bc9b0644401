package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gastobot/internal/models"
)

var testNow = time.Date(2026, 2, 26, 15, 30, 0, 0, time.UTC)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAssemble(t *testing.T) {
	t.Run("receipt date is decomposed into month and year", func(t *testing.T) {
		rec, err := Assemble(10, amount("45.90"), "BURGER HOUSE", "26/02/2026", testNow)
		require.NoError(t, err)

		assert.Equal(t, int64(10), rec.ChatID)
		assert.Equal(t, "BURGER HOUSE", rec.Description)
		assert.Equal(t, models.CategoryFood, rec.Category)
		assert.Equal(t, 2, rec.Month)
		assert.Equal(t, 2026, rec.Year)
		assert.Equal(t, time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), rec.Date)
	})

	t.Run("iso date is accepted", func(t *testing.T) {
		rec, err := Assemble(10, amount("12.00"), "mercado", "2026-08-01", testNow)
		require.NoError(t, err)
		assert.Equal(t, 8, rec.Month)
		assert.Equal(t, 2026, rec.Year)
		assert.Equal(t, models.CategorySupermarket, rec.Category)
	})

	t.Run("unparseable date falls back to processing date", func(t *testing.T) {
		rec, err := Assemble(10, amount("12.00"), "mercado", "99/99/9999", testNow)
		require.NoError(t, err)
		assert.Equal(t, 2, rec.Month)
		assert.Equal(t, 2026, rec.Year)
	})

	t.Run("description whitespace is collapsed and trimmed", func(t *testing.T) {
		rec, err := Assemble(10, amount("5.00"), "  MERCADO   BOM  ", "2026-02-26", testNow)
		require.NoError(t, err)
		assert.Equal(t, "MERCADO BOM", rec.Description)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		_, err := Assemble(10, decimal.Zero, "mercado", "2026-02-26", testNow)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		_, err := Assemble(10, amount("-3.50"), "mercado", "2026-02-26", testNow)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

type fakeStore struct {
	inserted []*models.ExpenseRecord
	err      error
}

func (f *fakeStore) Insert(_ context.Context, rec *models.ExpenseRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeStore) Query(_ context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error) {
	var out []models.ExpenseRecord
	for _, rec := range f.inserted {
		if filter.Month != 0 && rec.Month != filter.Month {
			continue
		}
		if filter.Year != 0 && rec.Year != filter.Year {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

type fakeMirror struct {
	appended []*models.ExpenseRecord
	err      error
}

func (f *fakeMirror) Append(_ context.Context, rec *models.ExpenseRecord) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, rec)
	return nil
}

func testRecord(t *testing.T) *models.ExpenseRecord {
	t.Helper()
	rec, err := Assemble(10, amount("45.90"), "BURGER HOUSE", "26/02/2026", testNow)
	require.NoError(t, err)
	return rec
}

func TestServiceLog(t *testing.T) {
	t.Run("store then mirror", func(t *testing.T) {
		store := &fakeStore{}
		mirror := &fakeMirror{}
		svc := NewService(store, mirror, zap.NewNop())

		require.NoError(t, svc.Log(context.Background(), testRecord(t)))
		assert.Len(t, store.inserted, 1)
		assert.Len(t, mirror.appended, 1)
	})

	t.Run("store failure skips mirror", func(t *testing.T) {
		store := &fakeStore{err: errors.New("connection refused")}
		mirror := &fakeMirror{}
		svc := NewService(store, mirror, zap.NewNop())

		err := svc.Log(context.Background(), testRecord(t))
		assert.ErrorIs(t, err, ErrStoreWrite)
		assert.Empty(t, mirror.appended)
	})

	t.Run("mirror failure keeps record stored", func(t *testing.T) {
		store := &fakeStore{}
		mirror := &fakeMirror{err: errors.New("quota exceeded")}
		svc := NewService(store, mirror, zap.NewNop())

		err := svc.Log(context.Background(), testRecord(t))
		assert.ErrorIs(t, err, ErrMirrorWrite)
		assert.Len(t, store.inserted, 1)

		// The record stays queryable despite the mirror failure.
		rows, qerr := store.Query(context.Background(), models.ExpenseFilter{Month: 2, Year: 2026})
		require.NoError(t, qerr)
		assert.Len(t, rows, 1)
	})

	t.Run("nil mirror is skipped", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewService(store, nil, zap.NewNop())
		require.NoError(t, svc.Log(context.Background(), testRecord(t)))
	})
}

func TestSum(t *testing.T) {
	records := []models.ExpenseRecord{
		{Amount: amount("12.00")},
		{Amount: amount("3.50")},
		{Amount: amount("45.90")},
	}
	assert.True(t, Sum(records).Equal(amount("61.40")))
	assert.True(t, Sum(nil).Equal(decimal.Zero))
}

func TestSumByCategory(t *testing.T) {
	records := []models.ExpenseRecord{
		{Amount: amount("10.00"), Category: models.CategoryFood},
		{Amount: amount("20.00"), Category: models.CategorySupermarket},
		{Amount: amount("5.00"), Category: models.CategoryFood},
	}

	totals := SumByCategory(records)
	require.Len(t, totals, 2)

	// Insertion order of first occurrence.
	assert.Equal(t, models.CategoryFood, totals[0].Category)
	assert.True(t, totals[0].Total.Equal(amount("15.00")))
	assert.Equal(t, models.CategorySupermarket, totals[1].Category)
	assert.True(t, totals[1].Total.Equal(amount("20.00")))
}
