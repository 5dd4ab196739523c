package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dentrack/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrClinicNotFound):
		return http.StatusNotFound, "CLINIC_NOT_FOUND", "clinic not found"
	case errors.Is(err, domain.ErrUploadNotFound):
		return http.StatusNotFound, "UPLOAD_NOT_FOUND", "upload not found"
	case errors.Is(err, domain.ErrDuplicateClinicName):
		return http.StatusConflict, "DUPLICATE_CLINIC_NAME", "clinic name already exists"
	case errors.Is(err, domain.ErrDuplicateFilename):
		return http.StatusConflict, "DUPLICATE_FILENAME", "filename already registered"
	case errors.Is(err, domain.ErrNoClinicsConfigured):
		return http.StatusConflict, "NO_CLINICS", "no clinics available; create a clinic before ingesting"
	case errors.Is(err, domain.ErrInvalidWeekStart):
		return http.StatusBadRequest, "INVALID_WEEK_START", "week start must be a Monday"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
