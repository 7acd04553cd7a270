// Package ui provides the user interface components for the petpost TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): title, tabs, signed-in user        │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   Splash | Login | Compose tab | Account tab        │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line): shortcuts or a flash message       │
//	└─────────────────────────────────────────────────────┘
//
// Nothing is drawn while the app is booting. The splash covers the screen
// until the navigation gate decides, then either the login form or the tab
// stack is shown.
//
// # Components
//
// ViewContext holds the layout numbers derived from the terminal size.
//
// Header renders the title over a theme gradient, the tab strip and the
// user ID.
//
// Footer shows shortcuts for the current screen, replaced by a flash
// message for a few seconds after an action.
//
// ComposeForm is the publication editor: description, contact info,
// status, location and the image strip.
//
// Modal hosts one modals.ModalState at a time, centered over the screen.
//
// # Themes
//
// Themes are defined in theme.go. SetTheme regenerates every style variable
// and pushes the palette down to the modals package.
package ui
