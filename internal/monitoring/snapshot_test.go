package monitoring

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotArchivesDataFiles(t *testing.T) {
	dataDir := t.TempDir()
	snapshotDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "people.json"), []byte(`[{"id":"1"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "users.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "notes.txt"), []byte("skip me"), 0o644))

	s, err := NewSnapshotScheduler("0 3 * * *", dataDir, snapshotDir, 10)
	require.NoError(t, err)
	require.NoError(t, s.Snapshot())

	snapshots, err := ListSnapshots(snapshotDir)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	// The archive must be fully written and readable.
	zr, err := zip.OpenReader(filepath.Join(snapshotDir, snapshots[0].Name))
	require.NoError(t, err)
	defer zr.Close()

	names := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		names[f.Name] = string(data)
	}
	assert.Equal(t, `[{"id":"1"}]`, names["people.json"])
	assert.Equal(t, `[]`, names["users.json"])
	assert.NotContains(t, names, "notes.txt")
}

func TestPruneKeepsNewestSnapshots(t *testing.T) {
	snapshotDir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"rolodex-a.zip", "rolodex-b.zip", "rolodex-c.zip"} {
		path := filepath.Join(snapshotDir, name)
		require.NoError(t, os.WriteFile(path, []byte("zip"), 0o644))
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, ts, ts))
	}

	s, err := NewSnapshotScheduler("0 3 * * *", t.TempDir(), snapshotDir, 2)
	require.NoError(t, err)
	require.NoError(t, s.prune())

	snapshots, err := ListSnapshots(snapshotDir)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "rolodex-c.zip", snapshots[0].Name)
	assert.Equal(t, "rolodex-b.zip", snapshots[1].Name)
}

func TestListSnapshotsMissingDir(t *testing.T) {
	snapshots, err := ListSnapshots(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestNewSnapshotSchedulerRejectsBadCron(t *testing.T) {
	_, err := NewSnapshotScheduler("not a cron", t.TempDir(), t.TempDir(), 1)
	assert.Error(t, err)
}
