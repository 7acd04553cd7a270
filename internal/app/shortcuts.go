package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/petpost/petpost/internal/keys"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/post"
	"github.com/petpost/petpost/internal/ui"
	"github.com/petpost/petpost/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key             string                              // The key binding (e.g., "x", "ctrl+s")
	DisplayKey      string                              // Display name in help; defaults to Key
	Description     string                              // Human-readable description
	Category        string                              // Section for help modal grouping
	RequiresCompose bool                                // Compose tab must be showing
	RequiresNoText  bool                                // No text field may have focus
	Handler         func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition       func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation  = "Navigation"
	CategoryPublication = "Publication"
	CategoryAccount     = "Account"
	CategoryGeneral     = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryPublication,
	CategoryAccount,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal
// and be executable from both direct key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:             keys.Tab,
		DisplayKey:      "Tab",
		Description:     "Next field",
		Category:        CategoryNavigation,
		RequiresCompose: true,
		Handler:         func(m *Model) (tea.Model, tea.Cmd) { return m, m.form.Next() },
	},
	{
		Key:             keys.ShiftTab,
		DisplayKey:      "Shift+Tab",
		Description:     "Previous field",
		Category:        CategoryNavigation,
		RequiresCompose: true,
		Handler:         func(m *Model) (tea.Model, tea.Cmd) { return m, m.form.Prev() },
	},
	{
		Key:         keys.CtrlT,
		Description: "Switch between Publish and Account",
		Category:    CategoryNavigation,
		Handler:     shortcutSwitchTab,
	},
	{
		Key:             keys.Left,
		DisplayKey:      "left/right",
		Description:     "Highlight image",
		Category:        CategoryNavigation,
		RequiresCompose: true,
		RequiresNoText:  true,
		Handler: func(m *Model) (tea.Model, tea.Cmd) {
			m.form.MoveImageCursor(-1)
			return m, nil
		},
	},
	{
		Key:             keys.Right,
		DisplayKey:      "right",
		Description:     "Highlight next image",
		Category:        CategoryNavigation,
		RequiresCompose: true,
		RequiresNoText:  true,
		Handler: func(m *Model) (tea.Model, tea.Cmd) {
			m.form.MoveImageCursor(1)
			return m, nil
		},
	},

	// Publication
	{
		Key:             keys.CtrlA,
		Description:     "Add images from the pictures folder",
		Category:        CategoryPublication,
		RequiresCompose: true,
		Handler:         func(m *Model) (tea.Model, tea.Cmd) { return m, m.startAddImages() },
	},
	{
		Key:             keys.CtrlV,
		Description:     "Paste image from clipboard",
		Category:        CategoryPublication,
		RequiresCompose: true,
		Handler:         func(m *Model) (tea.Model, tea.Cmd) { return m, m.startPaste() },
		Condition:       func(m *Model) bool { return m.paste != nil },
	},
	{
		Key:             "x",
		Description:     "Remove highlighted image",
		Category:        CategoryPublication,
		RequiresCompose: true,
		RequiresNoText:  true,
		Handler:         func(m *Model) (tea.Model, tea.Cmd) { return m, m.removeImageAtCursor() },
		Condition:       hasImages,
	},
	{
		Key:             keys.Delete,
		Description:     "Remove highlighted image",
		Category:        CategoryPublication,
		RequiresCompose: true,
		RequiresNoText:  true,
		Handler:         func(m *Model) (tea.Model, tea.Cmd) { return m, m.removeImageAtCursor() },
		Condition:       hasImages,
	},
	{
		Key:             keys.CtrlS,
		Description:     "Publish",
		Category:        CategoryPublication,
		RequiresCompose: true,
		Handler:         func(m *Model) (tea.Model, tea.Cmd) { return m, m.startSubmit() },
	},

	// Account
	{
		Key:            ",",
		Description:    "Settings",
		Category:       CategoryAccount,
		RequiresNoText: true,
		Handler:        shortcutSettings,
	},
	{
		Key:         keys.CtrlL,
		Description: "Sign out",
		Category:    CategoryAccount,
		Handler:     shortcutLogout,
	},

	// General
	{
		Key:            "q",
		Description:    "Quit",
		Category:       CategoryGeneral,
		RequiresNoText: true,
		Handler: func(m *Model) (tea.Model, tea.Cmd) {
			m.Close()
			return m, tea.Quit
		},
	},
}

// helpShortcut is kept out of the registry; its handler reads the registry.
var helpShortcut = Shortcut{
	Key:            "?",
	Description:    "Show this help",
	Category:       CategoryGeneral,
	RequiresNoText: true,
}

// textFocused reports whether keys are going to a text field.
func (m *Model) textFocused() bool {
	return m.tab == TabCompose && m.form.Focused() != ui.FieldImages
}

func hasImages(m *Model) bool {
	return m.composer != nil && len(m.composer.Draft().Images) > 0
}

func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresCompose && m.tab != TabCompose {
		return false
	}
	if s.RequiresNoText && m.textFocused() {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed,
// so the key can go to the focused field.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	log := logger.ComponentLogger("Shortcut")

	if key == helpShortcut.Key {
		if !m.isShortcutApplicable(helpShortcut) {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			log.Debug("guard failed", "key", key, "tab", m.tab, "textFocused", m.textFocused())
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections groups the applicable shortcuts by category.
func (m *Model) getApplicableHelpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)
	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range ShortcutRegistry {
		// right is listed together with left
		if s.Key == keys.Right || !m.isShortcutApplicable(s) {
			continue
		}
		add(s)
	}
	add(helpShortcut)
	add(Shortcut{Key: "ctrl+c", Description: "Quit", Category: CategoryGeneral})

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts := categories[cat]; len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{Title: cat, Shortcuts: shortcuts})
		}
	}
	return sections
}

func shortcutSwitchTab(m *Model) (tea.Model, tea.Cmd) {
	if m.tab == TabCompose {
		m.syncDraft()
		m.tab = TabAccount
		return m, nil
	}
	m.tab = TabCompose
	return m, m.form.Focus(m.form.Focused())
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpState(m.getApplicableHelpSections()))
	return m, nil
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	themes := make([]modals.ThemeOption, 0, len(ui.ThemeNames()))
	for _, name := range ui.ThemeNames() {
		themes = append(themes, modals.ThemeOption{Key: string(name), Name: ui.GetTheme(name).Name})
	}
	m.modal.Show(modals.NewSettingsState(themes, m.currentSettings()))
	return m, nil
}

func shortcutLogout(m *Model) (tea.Model, tea.Cmd) {
	hasDraft := m.composer != nil && !m.composer.Draft().Equal(post.NewDraft())
	m.modal.Show(modals.NewLogoutConfirmState(hasDraft))
	return m, nil
}
