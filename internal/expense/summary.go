package expense

import (
	"github.com/shopspring/decimal"

	"gastobot/internal/models"
)

type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
}

// Sum returns the arithmetic total of the amounts across records.
func Sum(records []models.ExpenseRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Amount)
	}
	return total
}

// SumByCategory partitions records by category and totals each partition.
// Result order is the insertion order of each category's first occurrence.
func SumByCategory(records []models.ExpenseRecord) []CategoryTotal {
	index := make(map[models.Category]int)
	totals := make([]CategoryTotal, 0)

	for _, rec := range records {
		i, ok := index[rec.Category]
		if !ok {
			i = len(totals)
			index[rec.Category] = i
			totals = append(totals, CategoryTotal{Category: rec.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(rec.Amount)
	}

	return totals
}
