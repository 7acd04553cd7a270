package ui

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Splash is shown over everything until the navigation gate decides.
type Splash struct {
	spinner spinner.Model
	visible bool
}

// NewSplash returns a visible splash.
func NewSplash() *Splash {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)
	return &Splash{spinner: s, visible: true}
}

// Visible reports whether the splash still covers the screen.
func (s *Splash) Visible() bool {
	return s.visible
}

// Hide dismisses the splash. It is never shown again.
func (s *Splash) Hide() {
	s.visible = false
}

// Tick starts the spinner.
func (s *Splash) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner while visible.
func (s *Splash) Update(msg tea.Msg) tea.Cmd {
	if !s.visible {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the splash centered in the given area.
func (s *Splash) View(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		SplashTitleStyle.Render("petpost"),
		SplashTaglineStyle.Render("lost and found pets"),
		"",
		s.spinner.View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
