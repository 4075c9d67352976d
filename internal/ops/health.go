// Package ops serves the driver's observability endpoint: liveness and
// readiness checks plus a Prometheus metrics page reporting the driver's
// connection state.
package ops

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/scenic-remote/driver/internal/driver"
)

var startTime = time.Now()

// StatsProvider is the one thing the ops endpoint needs from the running
// driver: its current connection snapshot.
type StatsProvider interface {
	Stats() driver.Stats
}

// HealthHandler serves /healthz (liveness) and /readyz (readiness).
type HealthHandler struct {
	driver StatsProvider
}

func NewHealthHandler(d StatsProvider) *HealthHandler {
	return &HealthHandler{driver: d}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ready", "/readyz":
		h.readiness(w)
	default:
		h.liveness(w)
	}
}

func (h *HealthHandler) liveness(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(startTime).String(),
	})
}

// readiness reports ready once the driver has a live transport connection
// (at least one peer, for the server transport).
func (h *HealthHandler) readiness(w http.ResponseWriter) {
	stats := h.driver.Stats()

	status := http.StatusOK
	statusStr := "ready"
	if !stats.Connected {
		status = http.StatusServiceUnavailable
		statusStr = "not_ready"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         statusStr,
		"uptime":         time.Since(startTime).String(),
		"uptime_seconds": time.Since(startTime).Seconds(),
		"driver": map[string]interface{}{
			"state":          stats.State,
			"connected":      stats.Connected,
			"peers":          stats.PeerCount,
			"bytes_received": stats.BytesReceived,
			"reconnects":     stats.Reconnects,
		},
		"memory": map[string]interface{}{
			"alloc_mb":  mem.Alloc / 1024 / 1024,
			"sys_mb":    mem.Sys / 1024 / 1024,
			"gc_cycles": mem.NumGC,
		},
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
	})
}
