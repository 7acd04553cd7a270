package app

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/petpost/petpost/internal/keys"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/nav"
	"github.com/petpost/petpost/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sized = true
		m.updateSizes()
		m.evaluateGate()
		return m, nil

	case SessionChangedMsg:
		m.sessionState = msg.State
		m.header.SetUser(msg.State.UserID)
		m.evaluateGate()
		return m, m.listenForSession()

	case spinner.TickMsg:
		return m, m.splash.Update(msg)

	case ui.FlashTickMsg:
		m.footer.ClearIfExpired()
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case LogoutResultMsg:
		return m.handleLogoutResult(msg)

	case SubmitResultMsg:
		return m.handleSubmitResult(msg)

	case ImagesAddedMsg:
		return m.handleImagesAdded(msg)

	case PasteResultMsg:
		return m.handlePasteResult(msg)

	case ConsentRequestMsg:
		return m.handleConsentRequest(msg)

	case PickRequestMsg:
		return m.handlePickRequest(msg)

	case NotificationSentMsg:
		if msg.Err != nil {
			logger.ComponentLogger("App").Warn("notification failed", "error", msg.Err)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)
	}

	return m.routeToFocused(msg)
}

// handleKeyPress dispatches a key to the modal, the login form or the
// current tab.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keys.CtrlC {
		m.Close()
		return m, tea.Quit
	}

	if m.splash.Visible() {
		return m, nil
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	switch m.route {
	case nav.RouteLogin:
		return m.handleLoginKey(msg)
	case nav.RouteTabs:
		if !m.gate.AllowsTabs() || m.composer == nil {
			return m, nil
		}
		if m.state == StateSubmitting || m.state == StateLoggingOut {
			return m, nil
		}
		if model, cmd, ok := m.ExecuteShortcut(key); ok {
			return model, cmd
		}
		if m.tab == TabCompose {
			// ctrl+v only ever pastes images; text arrives as tea.PasteMsg.
			if key == keys.CtrlV {
				return m, nil
			}
			return m.routeToFocused(msg)
		}
	}
	return m, nil
}

// routeToFocused forwards msg to whatever has input focus.
func (m *Model) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.splash.Visible() {
		return m, nil
	}
	if m.modal.IsVisible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	switch m.route {
	case nav.RouteLogin:
		if m.login != nil {
			_, cmd := m.login.Update(msg)
			return m, cmd
		}
	case nav.RouteTabs:
		if m.composer == nil || m.tab != TabCompose || m.state == StateSubmitting {
			return m, nil
		}
		cmd := m.form.Update(msg)
		m.syncDraft()
		return m, cmd
	}
	return m, nil
}
