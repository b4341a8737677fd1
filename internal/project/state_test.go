package project

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	var state AppState
	state.AddRecent("/data/a.xlsx")
	state.AddRecent("/other/b.xlsx")
	state.AddRecent("/data/a.xlsx")

	if err := SaveState(path, state); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if len(loaded.RecentFiles) != 2 || loaded.RecentFiles[0] != "/data/a.xlsx" {
		t.Errorf("unexpected recent files %v", loaded.RecentFiles)
	}
	if loaded.LastDir != "/data" {
		t.Errorf("expected LastDir /data, got %q", loaded.LastDir)
	}
}

func TestLoadStateMissingFile(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "nonexistent", "state.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if state.RecentFiles == nil {
		t.Error("RecentFiles should not be nil")
	}
}

func TestAddRecentLimit(t *testing.T) {
	var state AppState
	for i := 0; i < maxRecentFiles+5; i++ {
		state.AddRecent(fmt.Sprintf("/f%d.xlsx", i))
	}
	if len(state.RecentFiles) != maxRecentFiles {
		t.Errorf("expected %d recent files, got %d", maxRecentFiles, len(state.RecentFiles))
	}
	if state.RecentFiles[0] != fmt.Sprintf("/f%d.xlsx", maxRecentFiles+4) {
		t.Errorf("newest file should be first, got %q", state.RecentFiles[0])
	}
}
