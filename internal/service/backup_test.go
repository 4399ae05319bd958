package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"spinwheel/internal/store"
)

func TestBackupCopiesStateFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	b := &BackupService{Store: st, Keep: 5, Logger: zap.NewNop()}
	if err := b.Run(); err != nil {
		t.Fatalf("backup: %v", err)
	}

	backups, err := os.ReadDir(filepath.Join(dir, "backups"))
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	snap := filepath.Join(dir, "backups", backups[0].Name())
	for _, name := range []string{"config.json", "settings.json", "history.json"} {
		if _, err := os.Stat(filepath.Join(snap, name)); err != nil {
			t.Fatalf("backup missing %s: %v", name, err)
		}
	}
}

func TestBackupPrunesOldSnapshots(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	backupsDir := filepath.Join(dir, "backups")
	// Pre-create old snapshots with lexically smaller timestamps.
	for _, stamp := range []string{"20200101T000000Z", "20200102T000000Z", "20200103T000000Z"} {
		if err := os.MkdirAll(filepath.Join(backupsDir, stamp), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	b := &BackupService{Store: st, Keep: 2, Logger: zap.NewNop()}
	if err := b.Run(); err != nil {
		t.Fatalf("backup: %v", err)
	}

	entries, err := os.ReadDir(backupsDir)
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 retained snapshots, got %d", len(entries))
	}
	// ReadDir sorts by name; oldest survivors must be the most recent stamps.
	if entries[0].Name() != "20200103T000000Z" {
		t.Fatalf("expected 20200103 snapshot retained, got %q", entries[0].Name())
	}
	if entries[1].Name() < time.Now().UTC().Format("20060102") {
		t.Fatalf("freshly written snapshot missing, got %q", entries[1].Name())
	}
}
