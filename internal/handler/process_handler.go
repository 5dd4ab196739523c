package handler

import (
	"github.com/gin-gonic/gin"

	"dentrack/internal/service"
)

// ProcessHandler handles pipeline trigger endpoints.
type ProcessHandler struct {
	ingestService  service.IngestService
	processService service.ProcessService
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(ingestService service.IngestService, processService service.ProcessService) *ProcessHandler {
	return &ProcessHandler{ingestService: ingestService, processService: processService}
}

// Ingest handles POST /api/v1/ingest. It registers unknown files from
// the incoming dir as new uploads.
func (h *ProcessHandler) Ingest(c *gin.Context) {
	registered, err := h.ingestService.RegisterIncoming(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"registered": len(registered), "uploads": registered})
}

// Process handles POST /api/v1/process. It runs the pipeline over every
// upload in status new and reports per-item outcomes; individual
// failures never fail the request.
func (h *ProcessHandler) Process(c *gin.Context) {
	report, err := h.processService.ProcessNewUploads(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"processed": report.Processed(),
		"failed":    report.Failed(),
		"items":     report.Items,
	})
}
