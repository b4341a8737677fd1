// Package project persists the working state: the packing session with its
// weights, and the small per-user state such as recently opened files.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/packassist/internal/model"
)

const sessionVersion = "1"

// ErrNoSession is returned by LoadSession when no session file exists.
var ErrNoSession = errors.New("no saved session")

// Session is a snapshot of the packing work in progress.
type Session struct {
	Version  string            `json:"version"`
	SavedAt  string            `json:"saved_at"`
	Source   string            `json:"source,omitempty"` // Imported list the session started from
	Shipment string            `json:"shipment,omitempty"`
	Geometry model.BoxGeometry `json:"geometry"`
	Columns  model.ColumnSet   `json:"columns"`
	Samples  []model.Sample    `json:"samples"`
}

// DefaultConfigDir returns the per-user application directory, ~/.packassist/.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".packassist")
}

// DefaultSessionPath returns the default autosave location.
func DefaultSessionPath() string {
	return filepath.Join(DefaultConfigDir(), "session.json")
}

// SaveSession writes s to path as JSON, creating parent directories. The
// file is written to a temporary name first and renamed into place.
func SaveSession(path string, s Session) error {
	s.Version = sessionVersion
	s.SavedAt = time.Now().UTC().Format(time.RFC3339)
	if s.Samples == nil {
		s.Samples = []model.Sample{}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// LoadSession reads a session and validates its geometry and weights.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	if s.Version == "" {
		return Session{}, fmt.Errorf("invalid session file: missing version field")
	}
	if err := s.Geometry.Validate(); err != nil {
		return Session{}, fmt.Errorf("invalid session file: %w", err)
	}
	for i, smp := range s.Samples {
		if smp.Weight != nil {
			if err := model.ValidateWeight(*smp.Weight); err != nil {
				return Session{}, fmt.Errorf("invalid session file: sample %d: %w", i, err)
			}
		}
	}
	return s, nil
}
