// Package lineitem extracts structured transaction records from raw
// report text, one candidate per line, in order of appearance.
package lineitem

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"dentrack/internal/domain"
)

var (
	datePattern      = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	phonePattern     = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	treatmentPattern = regexp.MustCompile(`\b[A-Z]\d{3,4}\b`)
	toothPattern     = regexp.MustCompile(`(?i)(?:tooth|tooth#|#)\s*(\d{1,2})`)
	currencyPattern  = regexp.MustCompile(`\$?\d{1,3}(?:,\d{3})*(?:\.\d{2})`)
	patientPattern   = regexp.MustCompile(`(?i)(?:patient|pt)\s*[:\-]\s*([A-Za-z ,.'-]+)`)

	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// Parse scans rawText line by line and returns the transaction-like
// records it finds. Lines mentioning "production" or "collections" are
// treated as summary lines and skipped; lines with no extractable signal
// are assumed to be prose and discarded. A line's own date wins over
// fallbackDate, which may be nil.
func Parse(rawText string, fallbackDate *time.Time) []domain.LineItem {
	var items []domain.LineItem
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lowered := strings.ToLower(line)
		if strings.Contains(lowered, "production") || strings.Contains(lowered, "collections") {
			continue
		}

		dateToken := ""
		var parsedDate *time.Time
		if m := datePattern.FindStringSubmatch(line); m != nil {
			dateToken = m[1]
			parsedDate = parseDate(m[1])
		}
		phone := phonePattern.FindString(line)
		patientToken := ""
		patientName := ""
		if m := patientPattern.FindStringSubmatch(line); m != nil {
			patientToken = m[0]
			patientName = strings.TrimSpace(m[1])
		}
		treatment := treatmentPattern.FindString(line)
		toothToken := ""
		toothNumber := ""
		if m := toothPattern.FindStringSubmatch(line); m != nil {
			toothToken = m[0]
			toothNumber = m[1]
		}
		amountTokens := currencyPattern.FindAllString(line, -1)

		// Of the currency amounts on a line, the first is charges and
		// the second is payments; the rest are ignored. This positional
		// rule is deliberate; downstream aggregation depends on it.
		var charges, payments *float64
		var parsedAmounts []float64
		for _, token := range amountTokens {
			raw := strings.ReplaceAll(strings.ReplaceAll(token, "$", ""), ",", "")
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			parsedAmounts = append(parsedAmounts, v)
		}
		if len(parsedAmounts) > 0 {
			charges = &parsedAmounts[0]
		}
		if len(parsedAmounts) > 1 {
			payments = &parsedAmounts[1]
		}

		tokens := []string{dateToken, phone, patientToken, treatment, toothToken}
		tokens = append(tokens, amountTokens...)
		description := cleanDescription(line, tokens)

		hasSignal := patientName != "" || toothNumber != "" || treatment != "" ||
			charges != nil || payments != nil || phone != ""
		if !hasSignal {
			continue
		}

		entryDate := parsedDate
		if entryDate == nil {
			entryDate = fallbackDate
		}
		if description == "" {
			description = line
		}

		items = append(items, domain.LineItem{
			EntryDate:     entryDate,
			PatientName:   optional(patientName),
			ToothNumber:   optional(toothNumber),
			TreatmentCode: optional(treatment),
			Description:   description,
			Charges:       charges,
			Payments:      payments,
			PhoneNumber:   optional(phone),
			RawLine:       line,
		})
	}
	return items
}

// parseDate normalizes a D[D]/M[M]/Y{2,4}-style token. Two-digit years
// are prefixed with "20"; a token that does not form a real calendar date
// is treated as no date at all.
func parseDate(value string) *time.Time {
	for _, sep := range []string{"/", "-"} {
		parts := strings.Split(value, sep)
		if len(parts) != 3 {
			continue
		}
		month, day, year := parts[0], parts[1], parts[2]
		if len(year) == 2 {
			year = "20" + year
		}
		y, err1 := strconv.Atoi(year)
		m, err2 := strconv.Atoi(month)
		d, err3 := strconv.Atoi(day)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil
		}
		if m < 1 || m > 12 {
			return nil
		}
		t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow (Feb 30 -> Mar 2), so check the
		// components round-trip before accepting.
		if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
			return nil
		}
		return &t
	}
	return nil
}

// cleanDescription removes the matched tokens from the line and collapses
// leftover whitespace.
func cleanDescription(line string, tokens []string) string {
	cleaned := line
	for _, token := range tokens {
		if token != "" {
			cleaned = strings.ReplaceAll(cleaned, token, "")
		}
	}
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	return strings.Trim(cleaned, " -\t")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
