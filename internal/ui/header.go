package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const headerTitle = " petpost"

// Header represents the top header bar
type Header struct {
	width     int
	tabs      []string
	activeTab int
	userID    string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetTabs sets the tab strip. A nil slice hides it.
func (h *Header) SetTabs(tabs []string, active int) {
	h.tabs = tabs
	h.activeTab = active
}

// SetUser sets the signed-in user shown on the right.
func (h *Header) SetUser(userID string) {
	h.userID = userID
}

// View renders the header
func (h *Header) View() string {
	var tabText string
	for i, t := range h.tabs {
		if i == h.activeTab {
			tabText += "  [" + t + "]"
		} else {
			tabText += "   " + t + " "
		}
	}

	left := headerTitle + tabText
	var right string
	if h.userID != "" {
		right = "user " + h.userID + " "
	}

	padding := h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if padding < 0 {
		padding = 0
		right = ""
	}

	content := left + strings.Repeat(" ", padding) + right
	return h.renderGradient(content, len([]rune(headerTitle)), len([]rune(left)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content over a gradient from the primary color to
// the background. The title is bold; everything after the tabs is muted.
func (h *Header) renderGradient(content string, titleEnd, tabsEnd int) string {
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleEnd)
		if i >= tabsEnd {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
