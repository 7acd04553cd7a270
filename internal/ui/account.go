package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// AccountInfo is what the account tab shows.
type AccountInfo struct {
	UserID        string
	APIURL        string
	PicturesDir   string
	MediaAccess   string
	Notifications bool
	Theme         string
	Version       string
}

// RenderAccount renders the account tab.
func RenderAccount(info AccountInfo, width int) string {
	userID := info.UserID
	if userID == "" {
		userID = "(unknown)"
	}
	access := info.MediaAccess
	if access == "" {
		access = "not asked yet"
	}
	notifications := "off"
	if info.Notifications {
		notifications = "on"
	}

	rows := [][2]string{
		{"User", userID},
		{"Server", info.APIURL},
		{"Pictures", info.PicturesDir},
		{"Picture access", access},
		{"Notifications", notifications},
		{"Theme", info.Theme},
		{"Version", info.Version},
	}

	label := lipgloss.NewStyle().Foreground(ColorTextMuted).Width(16)
	value := lipgloss.NewStyle().Foreground(ColorText)
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Account") + "\n\n")
	for _, r := range rows {
		b.WriteString(label.Render(r[0]) + value.Render(r[1]) + "\n")
	}
	b.WriteString("\n" + FooterDescStyle.Render("Press , to change settings or ctrl+l to sign out."))

	return PanelStyle.Width(width).Padding(0, 1).Render(b.String())
}
