package app

import (
	tea "charm.land/bubbletea/v2"

	perrors "github.com/petpost/petpost/internal/errors"
	"github.com/petpost/petpost/internal/keys"
	"github.com/petpost/petpost/internal/logger"
)

// handleLoginKey handles keys on the login route.
func (m *Model) handleLoginKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.login == nil {
		return m, nil
	}
	if msg.String() != keys.Enter {
		return m.routeToFocused(msg)
	}
	if m.login.Pending {
		return m, nil
	}

	email, password := m.login.Credentials()
	if email == "" || password == "" {
		m.loginErr = "Enter your email and password."
		return m, nil
	}

	m.login.Pending = true
	m.loginErr = ""
	m.setState(StateLoggingIn)

	session, ctx := m.session, m.ctx
	return m, func() tea.Msg {
		_, err := session.Login(ctx, email, password)
		return LoginResultMsg{Err: err}
	}
}

// handleLoginResult reports a failed login. Success needs no handling here:
// the new session arrives through the subscription and the gate routes.
func (m *Model) handleLoginResult(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	if m.state == StateLoggingIn {
		m.setState(StateIdle)
	}
	if msg.Err == nil {
		return m, nil
	}

	logger.ComponentLogger("App").Warn("login failed", "error", msg.Err)
	if m.login == nil {
		return m, nil
	}
	m.login.Pending = false
	m.login.ClearPassword()
	m.loginErr = loginErrorText(msg.Err)
	return m, nil
}

func loginErrorText(err error) string {
	switch perrors.GetKind(err) {
	case perrors.KindAuth:
		return "Invalid email or password."
	case perrors.KindInvalid:
		return "Enter your email and password."
	case perrors.KindNetwork:
		return "Could not reach the server. Check your connection."
	default:
		return "Login failed. Please try again."
	}
}

// startLogout clears the session in the background.
func (m *Model) startLogout() tea.Cmd {
	m.setState(StateLoggingOut)
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		_, err := session.Logout(ctx)
		return LogoutResultMsg{Err: err}
	}
}

func (m *Model) handleLogoutResult(msg LogoutResultMsg) (tea.Model, tea.Cmd) {
	if m.state == StateLoggingOut {
		m.setState(StateIdle)
	}
	if msg.Err != nil {
		logger.ComponentLogger("App").Error("logout failed", "error", msg.Err)
		return m, m.ShowFlashError("Could not sign out: " + msg.Err.Error())
	}
	return m, nil
}
