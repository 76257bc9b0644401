package expense

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gastobot/internal/categorize"
	"gastobot/internal/models"
)

var whitespaceRun = regexp.MustCompile(`\s{2,}`)

// Assemble combines extracted fields into a validated ExpenseRecord. The date
// string comes either as DD/MM/YYYY from a receipt or as ISO YYYY-MM-DD;
// anything unparseable falls back to the processing date. Month and year are
// decomposed from the resolved date and the category is computed from the
// description.
func Assemble(chatID int64, amount decimal.Decimal, description, date string, now time.Time) (*models.ExpenseRecord, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	description = strings.TrimSpace(whitespaceRun.ReplaceAllString(description, " "))

	resolved := parseDate(date, now)

	return &models.ExpenseRecord{
		ID:          uuid.New(),
		ChatID:      chatID,
		Amount:      amount,
		Description: description,
		Category:    categorize.Categorize(description),
		Date:        resolved,
		Month:       int(resolved.Month()),
		Year:        resolved.Year(),
		CreatedAt:   now,
	}, nil
}

func parseDate(date string, now time.Time) time.Time {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if d, err := time.Parse(layout, date); err == nil {
			return d
		}
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
