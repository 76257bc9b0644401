package extract

import (
	"regexp"
	"time"
)

var datePattern = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)

// ExtractDate returns the first DD/MM/YYYY token found in the text, verbatim.
// Receipts print dates in that form; the matched substring is passed through
// without calendar validation. When no token is present the processing date
// is used, formatted as ISO YYYY-MM-DD.
func ExtractDate(text string, now time.Time) string {
	if match := datePattern.FindString(text); match != "" {
		return match
	}
	return now.Format("2006-01-02")
}
