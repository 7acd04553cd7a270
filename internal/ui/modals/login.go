package modals

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// LoginState - email and password form shown on the login route
// =============================================================================

type LoginState struct {
	APIURL  string
	Pending bool

	email    string
	password string

	form *huh.Form
}

func (*LoginState) modalState() {}

func (s *LoginState) Title() string { return "Sign in to petpost" }

func (s *LoginState) Help() string {
	if s.Pending {
		return "Signing in..."
	}
	return "Tab: next field  Enter: sign in  ctrl+c: quit"
}

func (s *LoginState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	server := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render(TruncateString(s.APIURL, ModalInputWidth))
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, server, s.form.View(), help)
}

func (s *LoginState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if s.Pending {
		return s, nil
	}
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Credentials returns the entered email (trimmed) and password.
func (s *LoginState) Credentials() (email, password string) {
	return strings.TrimSpace(s.email), s.password
}

// Prefill sets both fields, as if typed.
func (s *LoginState) Prefill(email, password string) {
	s.email = email
	s.password = password
}

// ClearPassword empties the password after a failed attempt.
func (s *LoginState) ClearPassword() {
	s.password = ""
}

// NewLoginState creates the sign-in form.
func NewLoginState(apiURL, email string) *LoginState {
	s := &LoginState{APIURL: apiURL, email: email}
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(ModalInputCharLimit).
				Value(&s.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(ModalInputCharLimit).
				Value(&s.password),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
