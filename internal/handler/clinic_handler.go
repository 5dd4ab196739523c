package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dentrack/internal/service"
)

// ClinicHandler handles clinic directory endpoints.
type ClinicHandler struct {
	clinicService service.ClinicService
}

// NewClinicHandler creates a new ClinicHandler.
func NewClinicHandler(clinicService service.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinicService: clinicService}
}

// List handles GET /api/v1/clinics.
func (h *ClinicHandler) List(c *gin.Context) {
	clinics, err := h.clinicService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, clinics)
}

// Create handles POST /api/v1/clinics.
func (h *ClinicHandler) Create(c *gin.Context) {
	var req struct {
		Name          string  `json:"name" binding:"required"`
		PayPercentage float64 `json:"pay_percentage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	clinic, err := h.clinicService.Create(c.Request.Context(), req.Name, req.PayPercentage)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, clinic)
}
