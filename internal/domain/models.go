package domain

import (
	"time"

	"github.com/google/uuid"
)

// Clinic represents a dental clinic and the percentage of collections
// paid out to it.
type Clinic struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	PayPercentage float64   `db:"pay_percentage" json:"pay_percentage"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Upload represents a registered report image and its extraction results.
// EntryDate is the date the report covers, not the ingestion time.
type Upload struct {
	ID                uuid.UUID    `db:"id" json:"id"`
	Filename          string       `db:"filename" json:"filename"`
	ClinicID          *uuid.UUID   `db:"clinic_id" json:"clinic_id"`
	EntryDate         *time.Time   `db:"entry_date" json:"entry_date"`
	Status            UploadStatus `db:"status" json:"status"`
	RawText           *string      `db:"raw_text" json:"raw_text"`
	ProductionAmount  *float64     `db:"production_amount" json:"production_amount"`
	CollectionsAmount *float64     `db:"collections_amount" json:"collections_amount"`
	FailureReason     *string      `db:"failure_reason" json:"failure_reason"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updated_at"`
}

// LineItem is one transaction-like record extracted from a single line of
// report text. Line items are a derived projection of their upload's raw
// text and are replaced wholesale on every processing pass.
type LineItem struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UploadID      uuid.UUID  `db:"upload_id" json:"upload_id"`
	EntryDate     *time.Time `db:"entry_date" json:"entry_date"`
	PatientName   *string    `db:"patient_name" json:"patient_name"`
	ToothNumber   *string    `db:"tooth_number" json:"tooth_number"`
	TreatmentCode *string    `db:"treatment_code" json:"treatment_code"`
	Description   string     `db:"description" json:"description"`
	Charges       *float64   `db:"charges" json:"charges"`
	Payments      *float64   `db:"payments" json:"payments"`
	PhoneNumber   *string    `db:"phone_number" json:"phone_number"`
	RawLine       string     `db:"raw_line" json:"raw_line"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// Rollup is a materialized weekly aggregate. A nil ClinicID marks the
// organization-wide total row for the week.
type Rollup struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	WeekStart        time.Time  `db:"week_start" json:"week_start"`
	ClinicID         *uuid.UUID `db:"clinic_id" json:"clinic_id"`
	TotalProduction  float64    `db:"total_production" json:"total_production"`
	TotalCollections float64    `db:"total_collections" json:"total_collections"`
	EstimatedPay     float64    `db:"estimated_pay" json:"estimated_pay"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// WeeklyEntry is a processed upload's contribution to a week's rollup,
// joined to its clinic's pay percentage. Missing amounts read as zero.
type WeeklyEntry struct {
	ClinicID          uuid.UUID `db:"clinic_id"`
	PayPercentage     float64   `db:"pay_percentage"`
	ProductionAmount  float64   `db:"production_amount"`
	CollectionsAmount float64   `db:"collections_amount"`
}

// AmountSummary holds the aggregate figures extracted from a report's
// text. A nil field means no recognizable total was found, which is not
// an error.
type AmountSummary struct {
	ProductionAmount  *float64 `json:"production_amount"`
	CollectionsAmount *float64 `json:"collections_amount"`
}
