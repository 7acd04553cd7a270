package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestShowConfig_Plain(t *testing.T) {
	cfg := testCfg(t)
	cfg.SetTheme("nord")

	var out bytes.Buffer
	if err := showConfig(cfg, &out, false); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, cfg.FilePath()) {
		t.Errorf("missing file path: %q", s)
	}
	if !strings.Contains(s, `"theme": "nord"`) {
		t.Errorf("missing theme: %q", s)
	}
	if strings.Contains(s, "\x1b[") {
		t.Error("plain output contains escape codes")
	}
}

func TestHighlightJSON(t *testing.T) {
	src := `{"theme": "nord"}`
	got := highlightJSON(src)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI colors, got %q", got)
	}
	if !strings.Contains(got, "nord") {
		t.Errorf("value lost: %q", got)
	}
}
