package router

import (
	"github.com/gin-gonic/gin"

	"dentrack/internal/handler"
	"dentrack/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	clinicH *handler.ClinicHandler,
	uploadH *handler.UploadHandler,
	processH *handler.ProcessHandler,
	rollupH *handler.RollupHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Clinic directory
	clinics := v1.Group("/clinics")
	clinics.GET("", clinicH.List)
	clinics.POST("", clinicH.Create)

	// Uploads (entries)
	entries := v1.Group("/entries")
	entries.GET("", uploadH.List)
	entries.GET("/:id", uploadH.GetByID)
	entries.POST("/:id/reprocess", uploadH.Reprocess)

	// Pipeline triggers
	v1.POST("/ingest", processH.Ingest)
	v1.POST("/process", processH.Process)

	// Weekly rollups
	rollups := v1.Group("/weekly-rollups")
	rollups.GET("", rollupH.List)
	rollups.GET("/latest", rollupH.Latest)
	rollups.GET("/export", rollupH.Export)
	rollups.POST("/refresh", rollupH.Refresh)

	return r
}
