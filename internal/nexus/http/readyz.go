package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/blob"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pixelforge/nexus/pkg/httpx"
	"github.com/pixelforge/nexus/pkg/nexusapi"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database and blob storage
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	nexusapi.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	nexusapi.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	blobs blob.Store,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &nexusapi.HealthChecks{
			Database: "ok",
			Blobs:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check blob storage is writable with a throwaway probe
		if key, _, err := blobs.Store(strings.NewReader("ok"), "probe.tmp"); err != nil {
			checks.Blobs = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else {
			_ = blobs.Remove(key)
		}

		httpx.WriteJSON(w, statusCode, nexusapi.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
