package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastobot/internal/models"
)

func TestBuildQuery(t *testing.T) {
	t.Run("chat scope only", func(t *testing.T) {
		sql, args, err := buildQuery(models.ExpenseFilter{ChatID: 10}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "chat_id = $1")
		assert.Contains(t, sql, "ORDER BY date ASC, created_at ASC")
		assert.NotContains(t, sql, "month = ")
		assert.Equal(t, []interface{}{int64(10)}, args)
	})

	t.Run("period filter", func(t *testing.T) {
		sql, args, err := buildQuery(models.ExpenseFilter{ChatID: 10, Month: 2, Year: 2026}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "month = $2")
		assert.Contains(t, sql, "year = $3")
		assert.Equal(t, []interface{}{int64(10), 2, 2026}, args)
	})

	t.Run("category filter is case-insensitive", func(t *testing.T) {
		sql, args, err := buildQuery(models.ExpenseFilter{
			ChatID:   10,
			Month:    2,
			Year:     2026,
			Category: "restaurante",
		}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "category ILIKE $4")
		assert.Equal(t, []interface{}{int64(10), 2, 2026, "restaurante"}, args)
	})

	t.Run("like wildcards in category match literally", func(t *testing.T) {
		_, args, err := buildQuery(models.ExpenseFilter{ChatID: 10, Category: "%"}).ToSql()
		require.NoError(t, err)
		assert.Equal(t, []interface{}{int64(10), `\%`}, args)

		_, args, err = buildQuery(models.ExpenseFilter{ChatID: 10, Category: `fo_od\`}).ToSql()
		require.NoError(t, err)
		assert.Equal(t, []interface{}{int64(10), `fo\_od\\`}, args)
	})
}
