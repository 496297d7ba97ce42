package sources

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"os"
	"time"
)

const (
	diskWarningPct = 10
	syncHealthyAge = 10 * time.Minute
)

// System is host health: free disk on / and freshness of the sync log.
type System struct {
	DiskFreePct int  `json:"disk_free_pct"`
	DiskWarning bool `json:"disk_warning"`
	SyncOK      bool `json:"sync_ok"`
	SyncAgeMin  int  `json:"sync_age_min"`
}

// EmptySystem is the shape used when the probe cannot run.
func EmptySystem() System {
	return System{DiskFreePct: 100, SyncOK: true}
}

// HostProbe reports disk space and sync log age.
type HostProbe struct {
	DiskPath string
	SyncLog  string
	Now      func() time.Time
	// DiskUsage returns free and total bytes for a path.
	DiskUsage func(path string) (free, total uint64, err error)
}

// NewHostProbe probes / and the given sync log.
func NewHostProbe(syncLog string) *HostProbe {
	return &HostProbe{DiskPath: "/", SyncLog: syncLog, Now: time.Now, DiskUsage: diskUsage}
}

func (h *HostProbe) Fetch(ctx context.Context) Result[System] {
	out := EmptySystem()
	var probeErr error

	if h.DiskUsage != nil {
		free, total, err := h.DiskUsage(h.DiskPath)
		switch {
		case err != nil:
			probeErr = err
		case total > 0:
			out.DiskFreePct = int(math.Round(float64(free) / float64(total) * 100))
			out.DiskWarning = out.DiskFreePct < diskWarningPct
		}
	}

	if h.SyncLog != "" {
		now := time.Now()
		if h.Now != nil {
			now = h.Now()
		}
		info, err := os.Stat(h.SyncLog)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			out.SyncOK = false
		case err != nil:
			out.SyncOK = false
			probeErr = errors.Join(probeErr, err)
		default:
			age := now.Sub(info.ModTime())
			out.SyncAgeMin = int(math.Round(age.Minutes()))
			out.SyncOK = age < syncHealthyAge
		}
	}

	if probeErr != nil {
		return Failed(out, probeErr)
	}
	return OK(out)
}
