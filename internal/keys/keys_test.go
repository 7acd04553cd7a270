package keys

import "testing"

// TestKeyStringValues verifies that all key constants produce the expected
// string representations, in case Bubble Tea changes its key string format.
func TestKeyStringValues(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Up", Up, "up"},
		{"Down", Down, "down"},
		{"Left", Left, "left"},
		{"Right", Right, "right"},

		{"Enter", Enter, "enter"},
		{"Tab", Tab, "tab"},
		{"ShiftTab", ShiftTab, "shift+tab"},
		{"Space", Space, "space"},
		{"Backspace", Backspace, "backspace"},
		{"Delete", Delete, "delete"},
		{"Escape", Escape, "esc"},

		{"CtrlA", CtrlA, "ctrl+a"},
		{"CtrlC", CtrlC, "ctrl+c"},
		{"CtrlL", CtrlL, "ctrl+l"},
		{"CtrlS", CtrlS, "ctrl+s"},
		{"CtrlT", CtrlT, "ctrl+t"},
		{"CtrlV", CtrlV, "ctrl+v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("keys.%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}
