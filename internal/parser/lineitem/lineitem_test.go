package lineitem_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentrack/internal/parser/lineitem"
)

func TestParse_TwoAmountsBecomeChargesAndPayments(t *testing.T) {
	items := lineitem.Parse("01/15/2024 Patient: John Smith $150.00 $100.00 crown prep", nil)

	require.Len(t, items, 1)
	item := items[0]
	require.NotNil(t, item.Charges)
	require.NotNil(t, item.Payments)
	assert.Equal(t, 150.00, *item.Charges)
	assert.Equal(t, 100.00, *item.Payments)
	require.NotNil(t, item.PatientName)
	assert.Equal(t, "John Smith", *item.PatientName)
	require.NotNil(t, item.EntryDate)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), *item.EntryDate)
}

func TestParse_SingleAmountIsCharges(t *testing.T) {
	items := lineitem.Parse("pt: Jane Doe $75.50 exam", nil)

	require.Len(t, items, 1)
	require.NotNil(t, items[0].Charges)
	assert.Equal(t, 75.50, *items[0].Charges)
	assert.Nil(t, items[0].Payments)
}

func TestParse_ExtraAmountsIgnored(t *testing.T) {
	items := lineitem.Parse("pt: A Person $10.00 $20.00 $30.00", nil)

	require.Len(t, items, 1)
	assert.Equal(t, 10.00, *items[0].Charges)
	assert.Equal(t, 20.00, *items[0].Payments)
}

func TestParse_SkipsSummaryLines(t *testing.T) {
	raw := "Production: $5,000.00\nCollections: $4,000.00\npt: B Patient $50.00"

	items := lineitem.Parse(raw, nil)

	require.Len(t, items, 1)
	require.NotNil(t, items[0].PatientName)
	assert.Equal(t, "B Patient", *items[0].PatientName)
}

func TestParse_DiscardsLinesWithoutSignal(t *testing.T) {
	raw := "Daily Report for the office\n\nThank you for visiting\n01/15/2024 just a date"

	items := lineitem.Parse(raw, nil)

	assert.Empty(t, items)
}

func TestParse_ExtractsTreatmentToothAndPhone(t *testing.T) {
	items := lineitem.Parse("D2740 tooth #14 555-123-4567 crown", nil)

	require.Len(t, items, 1)
	item := items[0]
	require.NotNil(t, item.TreatmentCode)
	assert.Equal(t, "D2740", *item.TreatmentCode)
	require.NotNil(t, item.ToothNumber)
	assert.Equal(t, "14", *item.ToothNumber)
	require.NotNil(t, item.PhoneNumber)
	assert.Equal(t, "555-123-4567", *item.PhoneNumber)
}

func TestParse_TwoDigitYearNormalized(t *testing.T) {
	items := lineitem.Parse("3/5/24 pt: C Short $10.00", nil)

	require.Len(t, items, 1)
	require.NotNil(t, items[0].EntryDate)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), *items[0].EntryDate)
}

func TestParse_InvalidDateFallsBack(t *testing.T) {
	fallback := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	items := lineitem.Parse("2/30/2024 pt: D Nobody $10.00", &fallback)

	require.Len(t, items, 1)
	require.NotNil(t, items[0].EntryDate)
	assert.Equal(t, fallback, *items[0].EntryDate)
}

func TestParse_LineDateWinsOverFallback(t *testing.T) {
	fallback := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	items := lineitem.Parse("01-15-2024 pt: E Someone $10.00", &fallback)

	require.Len(t, items, 1)
	require.NotNil(t, items[0].EntryDate)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), *items[0].EntryDate)
}

func TestParse_DescriptionStripsTokens(t *testing.T) {
	items := lineitem.Parse("01/15/2024  pt: F Patient  $150.00  crown prep", nil)

	require.Len(t, items, 1)
	assert.Equal(t, "crown prep", items[0].Description)
	assert.Equal(t, "01/15/2024  pt: F Patient  $150.00  crown prep", items[0].RawLine)
}

func TestParse_DescriptionFallsBackToWholeLine(t *testing.T) {
	items := lineitem.Parse("$25.00", nil)

	require.Len(t, items, 1)
	assert.Equal(t, "$25.00", items[0].Description)
}

func TestParse_PreservesLineOrder(t *testing.T) {
	raw := "pt: First $1.00\npt: Second $2.00\npt: Third $3.00"

	items := lineitem.Parse(raw, nil)

	require.Len(t, items, 3)
	assert.Equal(t, "First", *items[0].PatientName)
	assert.Equal(t, "Second", *items[1].PatientName)
	assert.Equal(t, "Third", *items[2].PatientName)
}
