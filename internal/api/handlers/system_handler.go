package handlers

import (
	"net/http"
	"runtime"

	"github.com/adelr/rolodex-be/internal/monitoring"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHandler exposes host stats and snapshot listings.
type SystemHandler struct {
	snapshotDir string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(snapshotDir string) *SystemHandler {
	return &SystemHandler{snapshotDir: snapshotDir}
}

// Stats reports host CPU and memory usage.
func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"goVersion": runtime.Version(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats["cpuPercent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats["memory"] = map[string]interface{}{
			"totalBytes":  vm.Total,
			"usedBytes":   vm.Used,
			"usedPercent": vm.UsedPercent,
		}
	}
	if uptime, err := host.Uptime(); err == nil {
		stats["uptimeSeconds"] = uptime
	}

	respondJSON(w, http.StatusOK, stats)
}

// Snapshots lists the archived data snapshots, newest first.
func (h *SystemHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := monitoring.ListSnapshots(h.snapshotDir)
	if err != nil {
		respondServiceError(w, err, "Failed to list snapshots")
		return
	}
	if snapshots == nil {
		snapshots = []monitoring.SnapshotInfo{}
	}
	respondJSON(w, http.StatusOK, snapshots)
}
