package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"spinwheel/internal/models"
)

// Category names one persisted state document.
type Category string

const (
	CategoryConfig   Category = "config"
	CategorySettings Category = "settings"
	CategoryHistory  Category = "history"
)

// Store owns the three state singletons and serializes access per category.
// Each category lives in one JSON file under dir; a write replaces the whole
// document and is durable before the call returns. A missing or unparsable
// file reads as the category default, never as an error.
type Store struct {
	dir    string
	logger *zap.Logger

	configMu   sync.Mutex
	settingsMu sync.Mutex
	historyMu  sync.Mutex
}

// Open creates the data dir if needed and seeds defaults for absent files so
// the first boot starts from a consistent state.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir, logger: logger}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) seed() error {
	if _, err := os.Stat(s.path(CategoryConfig)); errors.Is(err, os.ErrNotExist) {
		if err := s.WriteConfig(models.DefaultWheelConfig()); err != nil {
			return err
		}
	}
	if _, err := os.Stat(s.path(CategorySettings)); errors.Is(err, os.ErrNotExist) {
		if err := s.WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}
	if _, err := os.Stat(s.path(CategoryHistory)); errors.Is(err, os.ErrNotExist) {
		if err := s.writeHistoryLocked([]models.HistoryEntry{}); err != nil {
			return err
		}
	}
	return nil
}

// Dir returns the data directory the store writes under.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(cat Category) string {
	return filepath.Join(s.dir, string(cat)+".json")
}

// readJSON loads a category document into v. Returns false when the file is
// missing or corrupt; the caller substitutes the category default.
func (s *Store) readJSON(cat Category, v any) bool {
	data, err := os.ReadFile(s.path(cat))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		if s.logger != nil {
			s.logger.Warn("corrupt state file, using default",
				zap.String("category", string(cat)), zap.Error(err))
		}
		return false
	}
	return true
}

// writeJSON replaces a category document. The temp-file rename keeps a
// concurrent reader from ever observing a torn document.
func (s *Store) writeJSON(cat Category, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", cat, err)
	}
	tmp := s.path(cat) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cat, err)
	}
	if err := os.Rename(tmp, s.path(cat)); err != nil {
		return fmt.Errorf("replace %s: %w", cat, err)
	}
	return nil
}

func (s *Store) ReadConfig() models.WheelConfig {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	var cfg models.WheelConfig
	if !s.readJSON(CategoryConfig, &cfg) || cfg.Prizes == nil {
		return models.DefaultWheelConfig()
	}
	return cfg
}

func (s *Store) WriteConfig(cfg models.WheelConfig) error {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	return s.writeJSON(CategoryConfig, cfg)
}

func (s *Store) ReadSettings() models.Settings {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()
	var set models.Settings
	if !s.readJSON(CategorySettings, &set) {
		return models.DefaultSettings()
	}
	return set.Clamp()
}

func (s *Store) WriteSettings(set models.Settings) error {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()
	return s.writeJSON(CategorySettings, set)
}

func (s *Store) ReadHistory() []models.HistoryEntry {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	return s.readHistoryLocked()
}

func (s *Store) readHistoryLocked() []models.HistoryEntry {
	var hist []models.HistoryEntry
	if !s.readJSON(CategoryHistory, &hist) || hist == nil {
		return []models.HistoryEntry{}
	}
	return hist
}

func (s *Store) WriteHistory(hist []models.HistoryEntry) error {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	return s.writeHistoryLocked(hist)
}

func (s *Store) writeHistoryLocked(hist []models.HistoryEntry) error {
	if hist == nil {
		hist = []models.HistoryEntry{}
	}
	return s.writeJSON(CategoryHistory, hist)
}

// UpdateHistory applies fn to the current history under the category lock so
// concurrent read-modify-write appends cannot lose entries. It returns the
// sequence that was persisted.
func (s *Store) UpdateHistory(fn func([]models.HistoryEntry) []models.HistoryEntry) ([]models.HistoryEntry, error) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	next := fn(s.readHistoryLocked())
	if err := s.writeHistoryLocked(next); err != nil {
		return nil, err
	}
	return next, nil
}
