package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

// AppVersion is stamped into every saved settings document.
const AppVersion = "3.0.0"

const backupSuffix = ".backup"

// Snapshot is a point-in-time copy of the persisted settings.
type Snapshot struct {
	LastURL     string
	LastQuality twitch.Quality
	QuickSwap   []string
}

type document struct {
	LastURL    string   `json:"last_url"`
	Quality    string   `json:"last_quality"`
	QuickSwap  []string `json:"quick_swap_streams"`
	AppVersion string   `json:"app_version"`
}

// Store reads and writes the settings document. All methods are safe for
// concurrent use; setters persist synchronously before returning.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
	log  zerolog.Logger
}

// DefaultPath returns the per-user settings location, creating nothing.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "streamaski", "settings.json"), nil
}

// Open loads the settings document at path, falling back to defaults when
// the file is missing. A file that cannot be parsed as JSON is renamed
// aside with a .backup suffix and replaced by defaults.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		path: path,
		doc:  defaultDocument(),
		log:  logger,
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		backup := path + backupSuffix
		if renameErr := os.Rename(path, backup); renameErr != nil {
			return nil, fmt.Errorf("back up corrupt settings %s: %w", path, renameErr)
		}
		s.log.Warn().
			Str("path", path).
			Str("backup", backup).
			Err(err).
			Msg("settings file corrupt, starting fresh")
		return s, nil
	}

	s.doc = doc
	return s, nil
}

// decodeDocument parses raw leniently: the document must be a JSON object,
// but each field that fails to decode is dropped in favor of its default
// rather than failing the whole load.
func decodeDocument(raw []byte) (document, error) {
	doc := defaultDocument()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return doc, fmt.Errorf("parse settings document: %w", err)
	}

	if v, ok := fields["last_url"]; ok {
		var u string
		if json.Unmarshal(v, &u) == nil {
			doc.LastURL = u
		}
	}
	if v, ok := fields["last_quality"]; ok {
		var q string
		if json.Unmarshal(v, &q) == nil && twitch.Quality(q).IsValid() {
			doc.Quality = q
		}
	}
	if v, ok := fields["quick_swap_streams"]; ok {
		var list []string
		if json.Unmarshal(v, &list) == nil {
			doc.QuickSwap = list
		}
	}
	return doc, nil
}

func defaultDocument() document {
	return document{
		Quality:    string(twitch.DefaultQuality),
		QuickSwap:  []string{},
		AppVersion: AppVersion,
	}
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		LastURL:     s.doc.LastURL,
		LastQuality: twitch.Quality(s.doc.Quality),
		QuickSwap:   append([]string(nil), s.doc.QuickSwap...),
	}
}

// SetLastStream records the most recently watched stream and persists the
// document.
func (s *Store) SetLastStream(url string, quality twitch.Quality) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.LastURL = url
	if quality.IsValid() {
		s.doc.Quality = string(quality)
	}
	return s.save()
}

// SetQuickSwap replaces the stored quick-swap list and persists the
// document.
func (s *Store) SetQuickSwap(urls []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.QuickSwap = append([]string(nil), urls...)
	return s.save()
}

// save writes the document to disk. Callers must hold s.mu.
func (s *Store) save() error {
	s.doc.AppVersion = AppVersion

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}
