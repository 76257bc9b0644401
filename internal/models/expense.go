package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFood        Category = "Food"
	CategorySupermarket Category = "Supermarket"
	CategoryTransport   Category = "Transport"
	CategoryHealth      Category = "Health"
	CategoryShopping    Category = "Shopping"
	CategoryOther       Category = "Other"
)

// ExpenseRecord is the central entity: one logged expense, immutable once
// assembled. Month and Year are denormalized from Date for range queries and
// must always equal its components.
type ExpenseRecord struct {
	ID          uuid.UUID       `db:"id"`
	ChatID      int64           `db:"chat_id"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Category    Category        `db:"category"`
	Date        time.Time       `db:"date"`
	Month       int             `db:"month"`
	Year        int             `db:"year"`
	CreatedAt   time.Time       `db:"created_at"`
}
