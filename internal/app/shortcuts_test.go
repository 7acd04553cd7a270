package app

import (
	"os"
	"testing"

	"github.com/petpost/petpost/internal/config"
	"github.com/petpost/petpost/internal/ui"
	"github.com/petpost/petpost/internal/ui/modals"
)

func TestShortcutRegistry_KeysAreUnique(t *testing.T) {
	seen := map[string]bool{helpShortcut.Key: true}
	for _, s := range ShortcutRegistry {
		if seen[s.Key] {
			t.Errorf("duplicate shortcut key %q", s.Key)
		}
		seen[s.Key] = true
		if s.Handler == nil {
			t.Errorf("shortcut %q has no handler", s.Key)
		}
		if s.Description == "" {
			t.Errorf("shortcut %q has no description", s.Key)
		}
	}
}

func TestShortcuts_TextFieldGuards(t *testing.T) {
	env := authedEnv(t)
	m := env.model

	for _, key := range []string{"?", "q", ",", "x"} {
		if _, _, ok := m.ExecuteShortcut(key); ok {
			t.Errorf("%q ran while a text field had focus", key)
		}
	}

	m.form.Focus(ui.FieldImages)
	if _, _, ok := m.ExecuteShortcut("?"); !ok {
		t.Error("? should open help outside text fields")
	}
	if _, ok := m.modal.State.(*modals.HelpState); !ok {
		t.Errorf("modal = %T, want help", m.modal.State)
	}
}

func TestHelpSections(t *testing.T) {
	env := authedEnv(t)
	m := env.model

	sections := m.getApplicableHelpSections()
	if len(sections) == 0 {
		t.Fatal("no help sections")
	}
	for i, s := range sections {
		if i > 0 && indexOf(categoryOrder, s.Title) < indexOf(categoryOrder, sections[i-1].Title) {
			t.Errorf("section %q out of order", s.Title)
		}
	}

	// Text field focused: guarded shortcuts are hidden, help itself is listed.
	var hasQuit, hasHelp bool
	for _, s := range sections {
		for _, sc := range s.Shortcuts {
			if sc.Key == "q" {
				hasQuit = true
			}
			if sc.Key == "?" {
				hasHelp = true
			}
		}
	}
	if hasQuit {
		t.Error("q listed while typing")
	}
	if !hasHelp {
		t.Error("? not listed")
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestHelpModal_RunsShortcut(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	m.form.Focus(ui.FieldImages)

	sendKey(m, "?")
	if !m.modal.IsVisible() {
		t.Fatal("help not shown")
	}
	// First entry is "Tab: Next field"
	sendKey(m, "enter")

	if m.modal.IsVisible() {
		t.Error("help still visible")
	}
	if m.form.Focused() != ui.FieldDetails {
		t.Errorf("focus = %v, want details after Tab wraps", m.form.Focused())
	}
}

func TestExecuteHelpShortcut_MapsDisplayKeys(t *testing.T) {
	env := authedEnv(t)
	m := env.model

	m.executeHelpShortcut("Tab")
	if m.form.Focused() != ui.FieldInfo {
		t.Errorf("focus = %v, want info", m.form.Focused())
	}
	m.executeHelpShortcut("Shift+Tab")
	if m.form.Focused() != ui.FieldDetails {
		t.Errorf("focus = %v, want details", m.form.Focused())
	}
}

func TestSettings_SaveAndCancel(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	sendKey(m, "ctrl+t")

	sendKey(m, ",")
	s, ok := m.modal.State.(*modals.SettingsState)
	if !ok {
		t.Fatalf("modal = %T, want settings", m.modal.State)
	}
	sendKey(m, "esc")
	if m.modal.IsVisible() {
		t.Error("settings still visible after esc")
	}

	sendKey(m, ",")
	s = m.modal.State.(*modals.SettingsState)
	m.saveSettings(s)
	if m.modal.IsVisible() {
		t.Errorf("settings still visible: %q", m.modal.GetError())
	}
	if _, err := os.Stat(m.config.FilePath()); err != nil {
		t.Errorf("config not saved: %v", err)
	}
	if got := m.config.GetServerDefaults().Location; got != config.DefaultLocation {
		t.Errorf("default location = %q, want %q", got, config.DefaultLocation)
	}
	if m.config.GetMediaAccess() != config.MediaAccessUnset {
		t.Error("unchecked media access should stay undecided")
	}
}

func TestCurrentSettings(t *testing.T) {
	env := authedEnv(t)
	m := env.model
	m.config.SetMediaAccess(config.MediaAccessGranted)
	m.config.SetNotificationsEnabled(true)

	v := m.currentSettings()
	if !v.MediaAccessGranted || !v.NotificationsEnabled {
		t.Errorf("settings = %+v", v)
	}
	if v.APIURL != config.DefaultAPIURL {
		t.Errorf("api url = %q", v.APIURL)
	}
}
