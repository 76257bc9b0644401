package models

// ExpenseFilter selects stored records for the read-queries issued by
// reporting commands. Zero Month/Year mean "any"; an empty Category matches
// every category.
type ExpenseFilter struct {
	ChatID   int64
	Month    int
	Year     int
	Category Category
}
