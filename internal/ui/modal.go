package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/petpost/petpost/internal/ui/modals"
)

// ModalState is re-exported so the app layer can hold modal states without
// importing the modals package everywhere.
type ModalState = modals.ModalState

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// Done reports whether the visible modal's form finished on its own.
func (m *Modal) Done() bool {
	c, ok := m.State.(modals.Completable)
	return ok && c.Done()
}

// View renders the modal centered on a screen of the given size.
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}
	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		m.Box(screenWidth, screenHeight),
	)
}

// Box renders the bordered modal without placement.
func (m *Modal) Box(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	width := ModalWidth
	if pw, ok := m.State.(modals.ModalWithPreferredWidth); ok {
		width = pw.PreferredWidth()
	}
	width = min(width, max(screenWidth-4, 20))
	if sized, ok := m.State.(modals.ModalWithSize); ok {
		sized.SetSize(width-6, screenHeight-6)
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}
	return ModalStyle.Width(width).Render(content)
}

// RefreshModalStyles pushes the current palette and sizes to the modals
// package.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, ListItemStyle, ListSelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorWarning,
		ModalInputWidth, ModalInputCharLimit, ModalWidth, ModalWidthWide, PickerMaxVisible, HelpModalMaxVisible,
	)
}
