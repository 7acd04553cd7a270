// Package keys provides string constants for Bubble Tea v2 key press events.
//
// These constants are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String()
// so they always match the runtime values.
//
// Single-character keys like "x" or "?" are not included here.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up    = tea.KeyPressMsg{Code: tea.KeyUp}.String()    // "up"
	Down  = tea.KeyPressMsg{Code: tea.KeyDown}.String()  // "down"
	Left  = tea.KeyPressMsg{Code: tea.KeyLeft}.String()  // "left"
	Right = tea.KeyPressMsg{Code: tea.KeyRight}.String() // "right"
)

// Action keys
var (
	Enter     = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                    // "enter"
	Tab       = tea.KeyPressMsg{Code: tea.KeyTab}.String()                      // "tab"
	ShiftTab  = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String() // "shift+tab"
	Space     = tea.KeyPressMsg{Code: tea.KeySpace}.String()                    // "space"
	Backspace = tea.KeyPressMsg{Code: tea.KeyBackspace}.String()                // "backspace"
	Delete    = tea.KeyPressMsg{Code: tea.KeyDelete}.String()                   // "delete"
	Escape    = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                   // "esc"
)

// Ctrl combinations
var (
	CtrlA = (tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl}).String() // "ctrl+a"
	CtrlC = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String() // "ctrl+c"
	CtrlL = (tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}).String() // "ctrl+l"
	CtrlS = (tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}).String() // "ctrl+s"
	CtrlT = (tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}).String() // "ctrl+t"
	CtrlV = (tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl}).String() // "ctrl+v"
)
