package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrAmountNotFound = errors.New("no amount found in text")

var (
	totalPattern   = regexp.MustCompile(`(?i)\btotal\b\s*[:\-]?\s*(\d+[.,]\d{2})\b`)
	decimalPattern = regexp.MustCompile(`\d+[.,]\d{2}\b`)
)

// ExtractAmount locates the expense total in recognized text. A labeled
// "Total" wins; otherwise the last bare decimal with two fraction digits is
// taken, since receipts place the grand total last. Comma separators are
// normalized to dots before parsing.
func ExtractAmount(text string) (decimal.Decimal, error) {
	if match := totalPattern.FindStringSubmatch(text); match != nil {
		return parseAmount(match[1])
	}

	tokens := decimalPattern.FindAllString(text, -1)
	if len(tokens) == 0 {
		return decimal.Zero, ErrAmountNotFound
	}
	return parseAmount(tokens[len(tokens)-1])
}

func parseAmount(token string) (decimal.Decimal, error) {
	token = strings.ReplaceAll(token, ",", ".")
	value, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, ErrAmountNotFound
	}
	return value, nil
}
