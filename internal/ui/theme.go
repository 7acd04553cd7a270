// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	Primary   string // focus, highlights, header gradient start
	Secondary string // shortcut keys, counters

	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	Text        string
	TextMuted   string
	TextInverse string // Text on colored backgrounds

	Warning string
	Error   string
	Info    string
	Success string

	Border      string
	BorderFocus string // defaults to Primary if empty
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeCatppuccin ThemeName = "catppuccin"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Info:        "#06B6D4",
		Success:     "#10B981",
		Border:      "#374151",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Info:        "#81A1C1",
		Success:     "#A3BE8C",
		Border:      "#4C566A",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Info:        "#8BE9FD",
		Success:     "#50FA7B",
		Border:      "#44475A",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox Dark",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Warning:     "#FE8019",
		Error:       "#FB4934",
		Info:        "#83A598",
		Success:     "#B8BB26",
		Border:      "#504945",
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		Text:        "#C0CAF5",
		TextMuted:   "#565F89",
		TextInverse: "#1A1B26",
		Warning:     "#E0AF68",
		Error:       "#F7768E",
		Info:        "#7DCFFF",
		Success:     "#9ECE6A",
		Border:      "#3B4261",
	},
	ThemeCatppuccin: {
		Name:        "Catppuccin Mocha",
		Primary:     "#CBA6F7",
		Secondary:   "#89DCEB",
		Bg:          "#1E1E2E",
		Text:        "#CDD6F4",
		TextMuted:   "#6C7086",
		TextInverse: "#1E1E2E",
		Warning:     "#FAB387",
		Error:       "#F38BA8",
		Info:        "#89DCEB",
		Success:     "#A6E3A1",
		Border:      "#313244",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#E0E7FF",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Info:        "#0891B2",
		Success:     "#059669",
		Border:      "#D1D5DB",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var (
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// SetTheme sets the active theme and regenerates all styles. Unknown names
// fall back to the default theme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentThemeName = name
	currentTheme = BuiltinThemes[name]
	regenerateStyles()
	RefreshModalStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

func init() {
	regenerateStyles()
	RefreshModalStyles()
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorBgSelected = lipgloss.Color(t.GetBgSelected())

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	TabStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)
	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	FieldLabelStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	FieldLabelFocusedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FieldRequiredStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	ImageChipStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	ImageChipSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBgSelected).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)
	ImageSlotStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Border(lipgloss.HiddenBorder()).
		Padding(0, 1)

	ListItemStyle = lipgloss.NewStyle().
		Padding(0, 1)
	ListSelectedStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	SplashTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	SplashTaglineStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
}
