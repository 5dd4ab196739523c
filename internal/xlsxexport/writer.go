// Package xlsxexport renders a week's rollups as an Excel payroll sheet.
package xlsxexport

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"dentrack/internal/domain"
)

const sheetName = "Weekly Rollups"

// overallLabel names the synthetic organization-wide row.
const overallLabel = "All Clinics"

var columns = []string{
	"Week Start",
	"Clinic",
	"Total Production",
	"Total Collections",
	"Estimated Pay",
}

// WriteRollups builds an XLSX workbook with one row per rollup. Clinic
// names come from clinicNames; a rollup with a nil clinic renders as the
// overall row. Rows keep the order they were given in.
func WriteRollups(rollups []domain.Rollup, clinicNames map[uuid.UUID]string) (*excelize.File, error) {
	f := excelize.NewFile()
	// NewFile starts with a default sheet; rename it instead of juggling
	// sheet indexes.
	defaultName := f.GetSheetName(0)
	if err := f.SetSheetName(defaultName, sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, rollup := range rollups {
		name := overallLabel
		if rollup.ClinicID != nil {
			if n, ok := clinicNames[*rollup.ClinicID]; ok {
				name = n
			} else {
				name = rollup.ClinicID.String()
			}
		}
		values := []interface{}{
			rollup.WeekStart.Format("2006-01-02"),
			name,
			rollup.TotalProduction,
			rollup.TotalCollections,
			rollup.EstimatedPay,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}
	return f, nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// BuildFilename returns a sanitized filename for Content-Disposition.
// Format: rollups_{YYYY-MM-DD}.xlsx, or rollups_{prefix}_{YYYY-MM-DD}.xlsx
// when a prefix is given.
func BuildFilename(prefix string, weekStart time.Time) string {
	date := weekStart.Format("2006-01-02")
	if prefix == "" {
		return fmt.Sprintf("rollups_%s.xlsx", date)
	}
	s := nonAlphanumeric.ReplaceAllString(prefix, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return fmt.Sprintf("rollups_%s_%s.xlsx", s, date)
}
