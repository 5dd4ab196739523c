package xlsxexport_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentrack/internal/domain"
	"dentrack/internal/xlsxexport"
)

func TestWriteRollups_HeaderAndRows(t *testing.T) {
	weekStart := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)
	clinicID := uuid.New()
	rollups := []domain.Rollup{
		{WeekStart: weekStart, ClinicID: &clinicID, TotalProduction: 1200, TotalCollections: 800, EstimatedPay: 320},
		{WeekStart: weekStart, ClinicID: nil, TotalProduction: 1200, TotalCollections: 800, EstimatedPay: 280},
	}
	names := map[uuid.UUID]string{clinicID: "Bright Smiles"}

	f, err := xlsxexport.WriteRollups(rollups, names)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Weekly Rollups")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Week Start", "Clinic", "Total Production", "Total Collections", "Estimated Pay"}, rows[0])
	assert.Equal(t, "2024-02-05", rows[1][0])
	assert.Equal(t, "Bright Smiles", rows[1][1])
	assert.Equal(t, "1200", rows[1][2])
	assert.Equal(t, "2024-02-05", rows[2][0])
	assert.Equal(t, "All Clinics", rows[2][1])
}

func TestWriteRollups_UnknownClinicFallsBackToID(t *testing.T) {
	weekStart := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)
	clinicID := uuid.New()
	rollups := []domain.Rollup{
		{WeekStart: weekStart, ClinicID: &clinicID},
	}

	f, err := xlsxexport.WriteRollups(rollups, nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Weekly Rollups")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, clinicID.String(), rows[1][1])
}

func TestBuildFilename(t *testing.T) {
	weekStart := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "rollups_2024-02-05.xlsx", xlsxexport.BuildFilename("", weekStart))
	assert.Equal(t, "rollups_payroll_2024-02-05.xlsx", xlsxexport.BuildFilename("payroll", weekStart))
	assert.Equal(t, "rollups_Bright_Smiles_2024-02-05.xlsx", xlsxexport.BuildFilename("Bright Smiles!", weekStart))
}
