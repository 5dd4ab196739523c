package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrClinicNotFound      = errors.New("clinic not found")
	ErrUploadNotFound      = errors.New("upload not found")
	ErrDuplicateClinicName = errors.New("clinic name already exists")
	ErrDuplicateFilename   = errors.New("filename already registered")
	ErrNoClinicsConfigured = errors.New("no clinics available; create a clinic before ingesting")
	ErrInvalidWeekStart    = errors.New("week start must be a Monday")
)
