package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/packassist/internal/model"
)

func TestSaveAndLoadSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	w := 12.5
	s := Session{
		Source:   "/data/shipment_417.xlsx",
		Shipment: "417",
		Geometry: model.DefaultGeometry(),
		Columns:  model.DefaultColumns(),
		Samples: []model.Sample{
			{ID: "a", Code: "A1", Fields: []string{"x"}, Weight: &w},
			{ID: "b", Code: "A2"},
		},
	}
	if err := SaveSession(path, s); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded.Version != sessionVersion {
		t.Errorf("expected version %q, got %q", sessionVersion, loaded.Version)
	}
	if loaded.SavedAt == "" {
		t.Error("expected SavedAt to be set")
	}
	if loaded.Shipment != "417" || loaded.Geometry != model.DefaultGeometry() {
		t.Errorf("unexpected session header: %+v", loaded)
	}
	if len(loaded.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(loaded.Samples))
	}
	if loaded.Samples[0].Weight == nil || *loaded.Samples[0].Weight != 12.5 {
		t.Errorf("expected weight 12.5, got %v", loaded.Samples[0].Weight)
	}
	if loaded.Samples[1].Weight != nil {
		t.Error("expected second sample unweighed")
	}
	if loaded.Columns.Code != "Код" {
		t.Errorf("expected code column Код, got %q", loaded.Columns.Code)
	}
}

func TestLoadSessionMissingFile(t *testing.T) {
	_, err := LoadSession(filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestLoadSessionInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"garbage.json":   "not json",
		"noversion.json": `{"geometry":{"rows":9,"columns":9}}`,
		"geometry.json":  `{"version":"1","geometry":{"rows":0,"columns":9}}`,
		"weight.json":    `{"version":"1","geometry":{"rows":9,"columns":9},"samples":[{"code":"A","weight":-1}]}`,
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSession(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveSessionEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveSession(path, Session{Geometry: model.DefaultGeometry()}); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Samples == nil || len(loaded.Samples) != 0 {
		t.Errorf("expected empty sample list, got %v", loaded.Samples)
	}
}
