package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Screen identifies what the footer is describing.
type Screen int

const (
	ScreenSplash Screen = iota
	ScreenLogin
	ScreenCompose
	ScreenAccount
	ScreenModal
)

// FlashType is the severity of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient footer message.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has been shown long enough.
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives expiry of flash messages.
type FlashTickMsg time.Time

// FlashTick returns a command that fires once a second.
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	screen       Screen
	submitting   bool
	hasImages    bool
	bindings     []KeyBinding
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "tab", Desc: "next field"},
			{Key: "ctrl+a", Desc: "add images"},
			{Key: "ctrl+v", Desc: "paste image"},
			{Key: "ctrl+s", Desc: "publish"},
			{Key: "ctrl+t", Desc: "account"},
			{Key: "?", Desc: "help"},
		},
	}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates what the footer describes.
func (f *Footer) SetContext(screen Screen, submitting, hasImages bool) {
	f.screen = screen
	f.submitting = submitting
	f.hasImages = hasImages
}

// SetBindings replaces the compose screen bindings.
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows text for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, t FlashType) {
	f.SetFlashWithDuration(text, t, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for d.
func (f *Footer) SetFlashWithDuration(text string, t FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{Text: text, Type: t, CreatedAt: time.Now(), Duration: d}
}

// ClearFlash removes any flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is set.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) currentBindings() []KeyBinding {
	switch f.screen {
	case ScreenSplash:
		return nil
	case ScreenLogin:
		return []KeyBinding{
			{Key: "tab", Desc: "next field"},
			{Key: "enter", Desc: "sign in"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case ScreenModal:
		return []KeyBinding{
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "cancel"},
		}
	case ScreenAccount:
		return []KeyBinding{
			{Key: "ctrl+t", Desc: "compose"},
			{Key: ",", Desc: "settings"},
			{Key: "ctrl+l", Desc: "sign out"},
			{Key: "q", Desc: "quit"},
		}
	}

	if f.submitting {
		return []KeyBinding{{Key: "ctrl+c", Desc: "quit"}}
	}
	var out []KeyBinding
	for _, b := range f.bindings {
		out = append(out, b)
		if b.Key == "ctrl+a" && f.hasImages {
			out = append(out, KeyBinding{Key: "left/right x", Desc: "remove image"})
		}
	}
	return out
}

func (f *Footer) renderFlash() string {
	var icon string
	var style lipgloss.Style
	switch f.flashMessage.Type {
	case FlashError:
		icon, style = "✕", lipgloss.NewStyle().Foreground(ColorError)
	case FlashWarning:
		icon, style = "⚠", lipgloss.NewStyle().Foreground(ColorWarning)
	case FlashSuccess:
		icon, style = "✓", lipgloss.NewStyle().Foreground(ColorSuccess)
	default:
		icon, style = "ℹ", lipgloss.NewStyle().Foreground(ColorInfo)
	}
	return style.Render(icon + " " + f.flashMessage.Text)
}

// View renders the footer
func (f *Footer) View() string {
	var content string
	if f.flashMessage != nil {
		content = f.renderFlash()
	} else {
		var parts []string
		for _, b := range f.currentBindings() {
			parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
		}
		if f.submitting && f.screen == ScreenCompose {
			parts = append([]string{StatusLoadingStyle.Render("publishing...")}, parts...)
		}
		content = strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	}

	if f.width > 2 {
		content = ansi.Truncate(content, f.width-2, "…")
	}
	return FooterStyle.Width(f.width).Render(content)
}
