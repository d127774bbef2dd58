// Package settings persists application preferences as JSON with atomic
// saves and a corrupt-file fallback.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openauto/multiclick/pkg/clicker"
)

// Settings are the persisted user preferences.
type Settings struct {
	ClickPositions      []clicker.Position `json:"click_positions"`
	ClickRatePerSecond  float64            `json:"click_rate_per_second"`
	TotalClicks         int                `json:"total_clicks"`
	ClickType           clicker.ClickType  `json:"click_type"`
	ClickMode           clicker.ClickMode  `json:"click_mode"`
	RunInBackground     bool               `json:"run_in_background"`
	DebugOverlayEnabled bool               `json:"debug_overlay_enabled"`
	StartHotkey         string             `json:"start_hotkey"`
	StopHotkey          string             `json:"stop_hotkey"`
	DarkModeEnabled     bool               `json:"dark_mode_enabled"`
}

// Default returns the settings used when nothing is saved yet.
func Default() Settings {
	return Settings{
		ClickRatePerSecond: 5.0,
		ClickType:          clicker.ClickLeft,
		ClickMode:          clicker.ModeStaticSequence,
		StartHotkey:        "F6",
		StopHotkey:         "F7",
	}
}

// Manager loads and saves settings at a fixed path.
type Manager struct {
	path string
}

// NewManager creates a manager for the given path. An empty path selects
// <UserConfigDir>/multiclick/settings.json.
func NewManager(path string) *Manager {
	if path == "" {
		path = defaultPath()
	}
	return &Manager{path: path}
}

// Path returns the absolute settings file location.
func (m *Manager) Path() string { return m.path }

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "multiclick", "settings.json")
}

// Load reads settings from disk. A missing file yields defaults; a corrupt
// file is renamed to .bak for inspection and defaults are returned.
func (m *Manager) Load() Settings {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return Default()
	}

	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		// Keep the broken file around rather than clobbering it on the
		// next save.
		_ = os.Rename(m.path, m.path+".bak")
		return Default()
	}
	return s
}

// Save writes settings atomically: temp file in the same directory, then
// rename over the target.
func (m *Manager) Save(s Settings) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
