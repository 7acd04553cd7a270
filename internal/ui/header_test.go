package ui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

// stripANSI removes ANSI escape codes from a string for testing
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestHeader_View_Title(t *testing.T) {
	header := NewHeader()
	header.SetWidth(60)

	plain := stripANSI(header.View())
	if !strings.HasPrefix(plain, " petpost") {
		t.Errorf("header should start with the title, got %q", plain)
	}
	if w := runewidth.StringWidth(plain); w != 60 {
		t.Errorf("header width = %d, want 60", w)
	}
}

func TestHeader_View_TabsAndUser(t *testing.T) {
	header := NewHeader()
	header.SetWidth(80)
	header.SetTabs([]string{"Compose", "Account"}, 1)
	header.SetUser("u-42")

	plain := stripANSI(header.View())
	if !strings.Contains(plain, "Compose") || !strings.Contains(plain, "[Account]") {
		t.Errorf("active tab should be bracketed: %q", plain)
	}
	if !strings.HasSuffix(plain, "user u-42 ") {
		t.Errorf("user should be right-aligned: %q", plain)
	}
}

func TestHeader_View_NarrowDropsUser(t *testing.T) {
	header := NewHeader()
	header.SetWidth(10)
	header.SetTabs([]string{"Compose", "Account"}, 0)
	header.SetUser("someone-with-a-long-id")

	if strings.Contains(stripANSI(header.View()), "someone") {
		t.Error("user should be dropped when there is no room")
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#7C3AED")
	if r != 0x7C || g != 0x3A || b != 0xED {
		t.Errorf("parseHexColor = %d,%d,%d", r, g, b)
	}
	if r, g, b := parseHexColor("bad"); r|g|b != 0 {
		t.Error("invalid input should parse to black")
	}
}
