package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dentrack/internal/domain"
	"dentrack/internal/port"
	"dentrack/internal/service"
)

// UploadHandler handles upload (entry) endpoints.
type UploadHandler struct {
	uploads        port.UploadRepository
	processService service.ProcessService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads port.UploadRepository, processService service.ProcessService) *UploadHandler {
	return &UploadHandler{uploads: uploads, processService: processService}
}

// List handles GET /api/v1/entries. Uploads come back newest first with
// their status, amounts, and failure reason.
func (h *UploadHandler) List(c *gin.Context) {
	uploads, err := h.uploads.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, uploads)
}

// entryDetail is an upload joined with its extracted line items.
type entryDetail struct {
	domain.Upload
	LineItems []domain.LineItem `json:"line_items"`
}

// GetByID handles GET /api/v1/entries/:id.
func (h *UploadHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid upload id")
		return
	}

	upload, err := h.uploads.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	items, err := h.uploads.ListLineItems(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entryDetail{Upload: *upload, LineItems: items})
}

// Reprocess handles POST /api/v1/entries/:id/reprocess. A missing upload
// is a 404; a processing failure is a normal 200 whose payload carries
// the failed status and reason.
func (h *UploadHandler) Reprocess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid upload id")
		return
	}

	found, result, err := h.processService.ReprocessUpload(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !found {
		HandleError(c, domain.ErrUploadNotFound)
		return
	}
	RespondOK(c, result)
}
