package modals

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const helpKeyColumn = 14

type helpShortcutItem struct {
	shortcut HelpShortcut
}

func (i helpShortcutItem) FilterValue() string {
	return i.shortcut.Key + " " + i.shortcut.Desc
}

// helpSectionItem is a section header. It has no filter value so filtering
// hides it.
type helpSectionItem struct {
	title string
}

func (i helpSectionItem) FilterValue() string { return "" }

type helpDelegate struct{}

func (helpDelegate) Height() int                             { return 1 }
func (helpDelegate) Spacing() int                            { return 0 }
func (helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case helpSectionItem:
		fmt.Fprint(w, lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).Render(i.title))

	case helpShortcutItem:
		keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(helpKeyColumn)
		descStyle := lipgloss.NewStyle().Foreground(ColorText)
		prefix := "  "
		if index == m.Index() {
			keyStyle = keyStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			descStyle = descStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			prefix = "> "
		}
		fmt.Fprint(w, prefix+keyStyle.Render(i.shortcut.Key)+descStyle.Render(i.shortcut.Desc))
	}
}

// =============================================================================
// HelpState - keyboard shortcut list
// =============================================================================

// HelpState wraps a bubbles list.Model for the help modal. Enter on a
// shortcut triggers it.
type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  up/down: navigate  Enter: run  Esc: close"
}

func (s *HelpState) Render() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(s.Title()),
		s.list.View(),
		ModalHelpStyle.Render(s.Help()),
	)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize implements ModalWithSize.
func (s *HelpState) SetSize(width, height int) {
	// title and help lines plus their margins
	s.list.SetSize(width, max(1, height-4))
}

// SelectedShortcut returns the highlighted shortcut, or nil on a header.
func (s *HelpState) SelectedShortcut() *HelpShortcut {
	if si, ok := s.list.SelectedItem().(helpShortcutItem); ok {
		return &si.shortcut
	}
	return nil
}

// IsFiltering returns whether the user is currently typing in the filter.
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpState creates a HelpState listing sections in order.
func NewHelpState(sections []HelpSection) *HelpState {
	var items []list.Item
	first := -1
	for _, section := range sections {
		items = append(items, helpSectionItem{title: section.Title})
		for _, shortcut := range section.Shortcuts {
			if first < 0 {
				first = len(items)
			}
			items = append(items, helpShortcutItem{shortcut: shortcut})
		}
	}

	l := list.New(items, helpDelegate{}, ModalWidth, HelpModalMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)
	if first >= 0 {
		l.Select(first)
	}

	return &HelpState{list: l}
}
