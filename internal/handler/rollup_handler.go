package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dentrack/internal/domain"
	"dentrack/internal/port"
	"dentrack/internal/service"
	"dentrack/internal/xlsxexport"
)

// RollupHandler handles weekly rollup endpoints.
type RollupHandler struct {
	rollupService service.RollupService
	clinics       port.ClinicRepository
}

// NewRollupHandler creates a new RollupHandler.
func NewRollupHandler(rollupService service.RollupService, clinics port.ClinicRepository) *RollupHandler {
	return &RollupHandler{rollupService: rollupService, clinics: clinics}
}

// List handles GET /api/v1/weekly-rollups.
func (h *RollupHandler) List(c *gin.Context) {
	rollups, err := h.rollupService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rollups)
}

// Latest handles GET /api/v1/weekly-rollups/latest, the dashboard view:
// the most recent week's rows with clinic names resolved.
func (h *RollupHandler) Latest(c *gin.Context) {
	week, err := h.rollupService.LatestWeek(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	if week == nil {
		RespondOK(c, gin.H{"week_start": nil, "rollups": []domain.Rollup{}})
		return
	}

	rollups, err := h.rollupService.ListByWeek(c.Request.Context(), *week)
	if err != nil {
		HandleError(c, err)
		return
	}
	names, err := h.clinicNames(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	type namedRollup struct {
		domain.Rollup
		ClinicName *string `json:"clinic_name"`
	}
	out := make([]namedRollup, 0, len(rollups))
	for _, r := range rollups {
		nr := namedRollup{Rollup: r}
		if r.ClinicID != nil {
			if name, ok := names[*r.ClinicID]; ok {
				nr.ClinicName = &name
			}
		}
		out = append(out, nr)
	}
	RespondOK(c, gin.H{"week_start": week.Format("2006-01-02"), "rollups": out})
}

// Refresh handles POST /api/v1/weekly-rollups/refresh. It wholesale
// deletes and regenerates the given week's rows.
func (h *RollupHandler) Refresh(c *gin.Context) {
	var req struct {
		WeekStart string `json:"week_start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "week_start (YYYY-MM-DD) is required")
		return
	}
	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "week_start must be formatted YYYY-MM-DD")
		return
	}

	rollups, err := h.rollupService.Refresh(c.Request.Context(), weekStart)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rollups)
}

// Export handles GET /api/v1/weekly-rollups/export?week_start=YYYY-MM-DD,
// streaming the week's rollups as an XLSX payroll sheet.
func (h *RollupHandler) Export(c *gin.Context) {
	weekStart, err := time.Parse("2006-01-02", c.Query("week_start"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "week_start (YYYY-MM-DD) is required")
		return
	}

	rollups, err := h.rollupService.ListByWeek(c.Request.Context(), weekStart)
	if err != nil {
		HandleError(c, err)
		return
	}
	names, err := h.clinicNames(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	f, err := xlsxexport.WriteRollups(rollups, names)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := xlsxexport.BuildFilename("", weekStart)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; log only.
		log.Printf("rollupHandler: writing export: %v", err)
	}
}

func (h *RollupHandler) clinicNames(c *gin.Context) (map[uuid.UUID]string, error) {
	clinics, err := h.clinics.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(clinics))
	for _, clinic := range clinics {
		names[clinic.ID] = clinic.Name
	}
	return names, nil
}
