package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, regenerated from the current theme
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorMuted       color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorBgSelected  color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Header tab styles
var (
	TabStyle       lipgloss.Style
	TabActiveStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Compose form styles
var (
	FieldLabelStyle        lipgloss.Style
	FieldLabelFocusedStyle lipgloss.Style
	FieldRequiredStyle     lipgloss.Style

	ImageChipStyle         lipgloss.Style
	ImageChipSelectedStyle lipgloss.Style
	ImageSlotStyle         lipgloss.Style
)

// List styles (shared with modals)
var (
	ListItemStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// Splash styles
var (
	SplashTitleStyle   lipgloss.Style
	SplashTaglineStyle lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	StatusSuccessStyle lipgloss.Style
)
