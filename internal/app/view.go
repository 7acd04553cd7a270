package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/petpost/petpost/internal/nav"
	"github.com/petpost/petpost/internal/ui"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if !m.sized {
		return v
	}

	ctx := ui.GetViewContext()
	if m.splash.Visible() {
		v.SetContent(m.splash.View(ctx.TerminalWidth, ctx.TerminalHeight))
		return v
	}

	var body string
	screen := ui.ScreenSplash
	switch m.route {
	case nav.RouteLogin:
		screen = ui.ScreenLogin
		m.header.SetTabs(nil, 0)
		body = m.renderLogin(ctx.TerminalWidth, ctx.ContentHeight)
	case nav.RouteTabs:
		// Tabs never render before the gate allows them.
		if !m.gate.AllowsTabs() || m.composer == nil {
			return v
		}
		m.header.SetTabs(tabNames, int(m.tab))
		if m.tab == TabAccount {
			screen = ui.ScreenAccount
			body = ui.RenderAccount(m.accountInfo(), ctx.FormWidth)
		} else {
			screen = ui.ScreenCompose
			body = m.form.View(m.composer.Draft(), m.state == StateSubmitting)
		}
		body = lipgloss.PlaceHorizontal(ctx.TerminalWidth, lipgloss.Center, body)
	}

	hasImages := m.composer != nil && len(m.composer.Draft().Images) > 0
	if m.modal.IsVisible() {
		screen = ui.ScreenModal
	}
	m.footer.SetContext(screen, m.state == StateSubmitting, hasImages && m.form.Focused() == ui.FieldImages)

	body = lipgloss.NewStyle().Height(ctx.ContentHeight).MaxHeight(ctx.ContentHeight).Render(body)
	view := lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())

	// Overlay modal if visible
	if m.modal.IsVisible() {
		v.SetContent(m.modal.View(ctx.TerminalWidth, ctx.TerminalHeight))
		return v
	}

	v.SetContent(view)
	return v
}

func (m *Model) renderLogin(width, height int) string {
	if m.login == nil {
		return ""
	}
	content := m.login.Render()
	if m.loginErr != "" {
		content += "\n" + ui.StatusErrorStyle.Render(m.loginErr)
	}
	box := ui.ModalStyle.Width(min(ui.ModalWidth, width-4)).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) accountInfo() ui.AccountInfo {
	return ui.AccountInfo{
		UserID:        m.sessionState.UserID,
		APIURL:        m.config.GetAPIURL(),
		PicturesDir:   m.config.GetPicturesDir(),
		MediaAccess:   m.config.GetMediaAccess(),
		Notifications: m.config.GetNotificationsEnabled(),
		Theme:         string(ui.CurrentThemeName()),
		Version:       m.version,
	}
}
