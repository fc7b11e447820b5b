// Package monitoring runs the background snapshot scheduler for the
// file-backed storage mode.
package monitoring

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SnapshotScheduler periodically zips the data directory into the snapshot
// directory, keeping a bounded number of archives.
type SnapshotScheduler struct {
	schedule    cron.Schedule
	dataDir     string
	snapshotDir string
	keep        int
	nextRun     time.Time
	ticker      *time.Ticker
	done        chan bool
}

// NewSnapshotScheduler creates a scheduler from a standard cron expression.
func NewSnapshotScheduler(cronExpr, dataDir, snapshotDir string, keep int) (*SnapshotScheduler, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot cron expression %q: %w", cronExpr, err)
	}
	if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &SnapshotScheduler{
		schedule:    schedule,
		dataDir:     dataDir,
		snapshotDir: snapshotDir,
		keep:        keep,
		nextRun:     schedule.Next(time.Now()),
		done:        make(chan bool),
	}, nil
}

// Run starts the scheduler's ticking loop.
func (s *SnapshotScheduler) Run() {
	log.Info().Time("next_run", s.nextRun).Msg("Starting snapshot scheduler")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping snapshot scheduler")
			return
		case now := <-s.ticker.C:
			if now.After(s.nextRun) {
				if err := s.Snapshot(); err != nil {
					log.Error().Err(err).Msg("Snapshot failed")
				}
				s.nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the scheduler.
func (s *SnapshotScheduler) Stop() {
	s.done <- true
}

// Snapshot zips every data file into a timestamped archive and prunes old
// archives beyond the retention count.
func (s *SnapshotScheduler) Snapshot() error {
	name := fmt.Sprintf("rolodex-%s.zip", time.Now().Format("20060102-150405"))
	path := filepath.Join(s.snapshotDir, name)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		zw.Close()
		return fmt.Errorf("reading data directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := addFileToZip(zw, filepath.Join(s.dataDir, entry.Name()), entry.Name()); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing snapshot archive: %w", err)
	}

	log.Info().Str("snapshot", name).Msg("Snapshot created")
	return s.prune()
}

func addFileToZip(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s for snapshot: %w", path, err)
	}
	defer src.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}

func (s *SnapshotScheduler) prune() error {
	snapshots, err := ListSnapshots(s.snapshotDir)
	if err != nil {
		return err
	}
	if len(snapshots) <= s.keep {
		return nil
	}
	// ListSnapshots returns newest first; everything past keep goes.
	for _, old := range snapshots[s.keep:] {
		if err := os.Remove(filepath.Join(s.snapshotDir, old.Name)); err != nil {
			log.Warn().Err(err).Str("snapshot", old.Name).Msg("Failed to prune snapshot")
		}
	}
	return nil
}

// SnapshotInfo describes one archived snapshot.
type SnapshotInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListSnapshots returns the snapshot archives in a directory, newest first.
// A missing directory yields an empty list.
func ListSnapshots(dir string) ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zip") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, SnapshotInfo{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	return snapshots, nil
}
