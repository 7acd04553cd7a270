package ui

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/petpost/petpost/internal/ui/modals"
)

func TestNewModal(t *testing.T) {
	modal := NewModal()
	if modal.IsVisible() || modal.State != nil {
		t.Error("new modal should be hidden")
	}
	if modal.View(80, 24) != "" {
		t.Error("hidden modal should render nothing")
	}
}

func TestModal_ShowHide(t *testing.T) {
	modal := NewModal()
	modal.Show(modals.NewLogoutConfirmState(false))
	if !modal.IsVisible() {
		t.Error("modal should be visible after Show")
	}

	modal.SetError("boom")
	modal.Hide()
	if modal.IsVisible() || modal.GetError() != "" {
		t.Error("Hide should clear state and error")
	}
}

func TestModal_ShowClearsError(t *testing.T) {
	modal := NewModal()
	modal.Show(modals.NewLogoutConfirmState(false))
	modal.SetError("first")
	modal.Show(modals.NewMediaConsentState("/tmp"))
	if modal.GetError() != "" {
		t.Error("Show should reset the error")
	}
}

func TestModal_View(t *testing.T) {
	modal := NewModal()
	modal.Show(modals.NewLogoutConfirmState(true))
	modal.SetError("could not sign out")

	view := modal.View(100, 30)
	if !strings.Contains(view, "Sign out?") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "could not sign out") {
		t.Error("view should contain the error")
	}
	if h := lipgloss.Height(view); h != 30 {
		t.Errorf("placed view height = %d, want 30", h)
	}
}

func TestModal_Box_ClampsWidth(t *testing.T) {
	modal := NewModal()
	modal.Show(modals.NewImagePickerState("/tmp", nil, 4))

	box := modal.Box(50, 20)
	if w := lipgloss.Width(box); w > 50 {
		t.Errorf("box width %d exceeds screen", w)
	}
}

func TestModal_Done(t *testing.T) {
	modal := NewModal()
	if modal.Done() {
		t.Error("hidden modal is not done")
	}
	modal.Show(modals.NewHelpState(nil))
	if modal.Done() {
		t.Error("help modal never completes on its own")
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	SetThemeByName("nord")
	if CurrentThemeName() != ThemeNord || CurrentTheme().Name != "Nord" {
		t.Errorf("theme = %s", CurrentThemeName())
	}
	if modals.ColorPrimary != ColorPrimary {
		t.Error("modal palette should follow the theme")
	}

	SetThemeByName("no-such-theme")
	if CurrentThemeName() != DefaultTheme {
		t.Errorf("unknown theme should fall back to default, got %s", CurrentThemeName())
	}
}

func TestThemeNames_AllBuiltin(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(BuiltinThemes) {
		t.Errorf("ThemeNames has %d entries, BuiltinThemes %d", len(names), len(BuiltinThemes))
	}
	for _, n := range names {
		if _, ok := BuiltinThemes[n]; !ok {
			t.Errorf("theme %q is not builtin", n)
		}
	}
}
