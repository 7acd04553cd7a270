// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// MinTerminalWidth and MinTerminalHeight clamp layout math on tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 12

	// DetailsHeight is the number of lines for the description textarea
	DetailsHeight = 4

	// FormMaxWidth caps the compose form on wide terminals
	FormMaxWidth = 96

	// DefaultWrapWidth is the default width for text wrapping when the width is unknown
	DefaultWrapWidth = 80
)

// Field limits
const (
	DetailsCharLimit  = 2000
	InfoCharLimit     = 280
	LocationCharLimit = 120
	StatusCharLimit   = 40
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalWidthWide is used by the settings and picker modals
	ModalWidthWide = 100

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 52

	// PickerMaxVisible is the number of picker rows shown at once
	PickerMaxVisible = 10

	// HelpModalMaxVisible is the number of help rows shown at once
	HelpModalMaxVisible = 14
)

// DefaultFlashDuration is how long a footer flash message stays visible.
const DefaultFlashDuration = 4 * time.Second
