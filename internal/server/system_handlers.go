package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/di"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHandlers contains HTTP handlers for system monitoring
type SystemHandlers struct {
	log         zerolog.Logger
	container   *di.Container
	version     string
	startupTime time.Time

	// Overridable for tests
	cpuPercent func(interval time.Duration, perCPU bool) ([]float64, error)
	memory     func() (*mem.VirtualMemoryStat, error)
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, container *di.Container, version string) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		container:   container,
		version:     version,
		startupTime: time.Now(),
		cpuPercent:  cpu.Percent,
		memory:      mem.VirtualMemory,
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	Status        string        `json:"status"`
	Version       string        `json:"version"`
	UptimeSeconds float64       `json:"uptime_seconds"`
	CPUPercent    float64       `json:"cpu_percent"`
	RAMPercent    float64       `json:"ram_percent"`
	Goroutines    int           `json:"goroutines"`
	GoVersion     string        `json:"go_version"`
	Catalog       CatalogStatus `json:"catalog"`
}

// CatalogStatus summarizes the loaded configuration tables
type CatalogStatus struct {
	Instruments  int     `json:"instruments"`
	MaxScore     int     `json:"max_score"`
	SumTolerance float64 `json:"sum_tolerance"`
}

// HandleSystemStatus returns process, host and catalog status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuAvg, ramPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: time.Since(h.startupTime).Seconds(),
		CPUPercent:    cpuAvg,
		RAMPercent:    ramPercent,
		Goroutines:    runtime.NumGoroutine(),
		GoVersion:     runtime.Version(),
	}
	if h.container != nil && h.container.Tables != nil {
		response.Catalog = CatalogStatus{
			Instruments:  h.container.Universe.Size(),
			MaxScore:     h.container.Weights.MaxScore(),
			SumTolerance: h.container.Tables.SumTolerance,
		}
	}

	writeJSON(w, http.StatusOK, response, h.log)
}

// getSystemStats calculates CPU and RAM usage percentages.
// CPU is sampled over 100ms to keep the endpoint responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := h.cpuPercent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := h.memory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a plain JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
