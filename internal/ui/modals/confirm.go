package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// ConfirmPurpose tells the app what a ConfirmState is asking about.
type ConfirmPurpose int

const (
	ConfirmMediaAccess ConfirmPurpose = iota
	ConfirmLogout
)

// =============================================================================
// ConfirmState - yes/no question backed by a huh Confirm
// =============================================================================

type ConfirmState struct {
	Purpose ConfirmPurpose

	title       string
	description string
	answer      bool

	form *huh.Form
}

func (*ConfirmState) modalState() {}

func (s *ConfirmState) Title() string { return s.title }

func (s *ConfirmState) Help() string {
	return "left/right: choose  Enter: confirm  Esc: cancel"
}

func (s *ConfirmState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	parts := []string{title}
	if s.description != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(ColorText).
			Width(ModalInputWidth).
			Render(s.description))
	}
	parts = append(parts, s.form.View(), ModalHelpStyle.Render(s.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *ConfirmState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Done reports whether the user answered with a shortcut key.
func (s *ConfirmState) Done() bool {
	return formDone(s.form)
}

// Answer returns the selected answer.
func (s *ConfirmState) Answer() bool {
	return s.answer
}

func newConfirmState(purpose ConfirmPurpose, title, description, question, yes, no string, initial bool) *ConfirmState {
	s := &ConfirmState{
		Purpose:     purpose,
		title:       title,
		description: description,
		answer:      initial,
	}
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative(yes).
				Negative(no).
				Value(&s.answer),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}

// NewMediaConsentState asks whether petpost may read pictures from dir.
func NewMediaConsentState(dir string) *ConfirmState {
	return newConfirmState(ConfirmMediaAccess,
		"Access your pictures?",
		"petpost lists images in "+TruncatePath(dir, ModalInputWidth-20)+" so you can attach them to a publication. Your answer is remembered.",
		"Allow access?", "Allow", "Deny", true)
}

// NewLogoutConfirmState asks before signing out. An unsent draft is lost.
func NewLogoutConfirmState(hasDraft bool) *ConfirmState {
	desc := ""
	if hasDraft {
		desc = "Your unsent publication will be discarded."
	}
	return newConfirmState(ConfirmLogout, "Sign out?", desc, "Sign out now?", "Sign out", "Stay", false)
}
