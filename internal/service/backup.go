package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"spinwheel/internal/store"
)

// BackupService snapshots the persisted state files into timestamped
// subdirectories. It is an operator convenience, not a durability layer; the
// store's own files remain the source of truth.
type BackupService struct {
	Store  *store.Store
	Keep   int
	Logger *zap.Logger
}

var backupCategories = []store.Category{
	store.CategoryConfig,
	store.CategorySettings,
	store.CategoryHistory,
}

// Run takes one snapshot and prunes old ones beyond Keep.
func (b *BackupService) Run() error {
	dir := filepath.Join(b.Store.Dir(), "backups")
	stamp := time.Now().UTC().Format("20060102T150405Z")
	dest := filepath.Join(dir, stamp)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	for _, cat := range backupCategories {
		src := filepath.Join(b.Store.Dir(), string(cat)+".json")
		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read %s: %w", cat, err)
		}
		if err := os.WriteFile(filepath.Join(dest, string(cat)+".json"), data, 0o644); err != nil {
			return fmt.Errorf("copy %s: %w", cat, err)
		}
	}
	if b.Logger != nil {
		b.Logger.Info("state backup written", zap.String("dir", dest))
	}
	return b.prune(dir)
}

func (b *BackupService) prune(dir string) error {
	keep := b.Keep
	if keep <= 0 {
		keep = 24
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}
	// Timestamped names sort chronologically.
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
