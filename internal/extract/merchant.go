package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// OCR-misread tokens that disqualify a line from being the merchant name.
var merchantBlocklist = []string{"conferencia", "data", "hora", "mesa"}

var (
	leadingArtifact = regexp.MustCompile(`^\d+\s+`)
	multiSpace      = regexp.MustCompile(`\s{2,}`)
)

const (
	merchantScanLines = 6
	merchantMinLength = 5
	merchantFallback  = "Compra"
)

// ExtractMerchant scans the first normalized lines for the merchant name.
// Receipts print it near the top in upper case; the first line that is fully
// upper-case, longer than five characters and free of blocklisted words wins.
// A leading run of digits is stripped once, since OCR often misreads the
// logo edge as a number.
func ExtractMerchant(lines []string) string {
	limit := len(lines)
	if limit > merchantScanLines {
		limit = merchantScanLines
	}

	for _, line := range lines[:limit] {
		if !qualifiesAsMerchant(line) {
			continue
		}
		return cleanMerchant(line)
	}
	return merchantFallback
}

func qualifiesAsMerchant(line string) bool {
	if line != strings.ToUpper(line) {
		return false
	}
	if utf8.RuneCountInString(line) <= merchantMinLength {
		return false
	}
	lower := strings.ToLower(line)
	for _, blocked := range merchantBlocklist {
		if strings.Contains(lower, blocked) {
			return false
		}
	}
	return true
}

func cleanMerchant(line string) string {
	line = leadingArtifact.ReplaceAllString(line, "")
	line = multiSpace.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}
