package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	perrors "github.com/petpost/petpost/internal/errors"
)

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv(APIURLEnv, "")
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if got := cfg.GetAPIURL(); got != DefaultAPIURL {
		t.Errorf("GetAPIURL() = %q, want %q", got, DefaultAPIURL)
	}
	if cfg.GetMediaAccess() != MediaAccessUnset {
		t.Errorf("media access should start unset, got %q", cfg.GetMediaAccess())
	}
	if cfg.FilePath() != path {
		t.Errorf("FilePath() = %q, want %q", cfg.FilePath(), path)
	}
}

func TestLoadFrom_ExistingConfig(t *testing.T) {
	t.Setenv(APIURLEnv, "")
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"api_url": "https://pets.example.com/",
		"theme": "nord",
		"notifications_enabled": true,
		"media_access": "granted",
		"server_defaults": {"location": "Bauru"}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if got := cfg.GetAPIURL(); got != "https://pets.example.com" {
		t.Errorf("GetAPIURL() = %q, trailing slash should be trimmed", got)
	}
	if cfg.GetTheme() != "nord" {
		t.Errorf("GetTheme() = %q, want nord", cfg.GetTheme())
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("notifications should be enabled")
	}
	if cfg.GetMediaAccess() != MediaAccessGranted {
		t.Errorf("GetMediaAccess() = %q, want granted", cfg.GetMediaAccess())
	}

	defaults := cfg.GetServerDefaults()
	if defaults.Location != "Bauru" {
		t.Errorf("Location = %q, want Bauru", defaults.Location)
	}
	if defaults.Status != DefaultStatus {
		t.Errorf("Status = %q, want built-in %q", defaults.Status, DefaultStatus)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !perrors.Is(err, perrors.KindConfig) {
		t.Errorf("expected KindConfig error, got %v", err)
	}
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv(APIURLEnv, "http://10.0.0.2:8080/")
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"api_url": "https://pets.example.com"}`), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if got := cfg.GetAPIURL(); got != "http://10.0.0.2:8080" {
		t.Errorf("GetAPIURL() = %q, env override should win", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{name: "empty config", cfg: &Config{}},
		{name: "https url", cfg: &Config{APIURL: "https://api.example.com"}},
		{name: "relative url", cfg: &Config{APIURL: "/publications"}, wantErr: true},
		{name: "ftp url", cfg: &Config{APIURL: "ftp://example.com"}, wantErr: true},
		{name: "granted access", cfg: &Config{MediaAccess: MediaAccessGranted}},
		{name: "denied access", cfg: &Config{MediaAccess: MediaAccessDenied}},
		{name: "unknown access", cfg: &Config{MediaAccess: "maybe"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !perrors.Is(err, perrors.KindInvalid) {
				t.Errorf("expected KindInvalid, got %v", err)
			}
		})
	}
}

func TestConfig_APIURLPrecedence(t *testing.T) {
	cfg := &Config{}
	if cfg.GetAPIURL() != DefaultAPIURL {
		t.Errorf("expected default API URL, got %q", cfg.GetAPIURL())
	}

	if err := cfg.SetAPIURL("https://persisted.example.com/"); err != nil {
		t.Fatalf("SetAPIURL() failed: %v", err)
	}
	if cfg.GetAPIURL() != "https://persisted.example.com" {
		t.Errorf("expected persisted URL, got %q", cfg.GetAPIURL())
	}

	if err := cfg.OverrideAPIURL("http://localhost:9999"); err != nil {
		t.Fatalf("OverrideAPIURL() failed: %v", err)
	}
	if cfg.GetAPIURL() != "http://localhost:9999" {
		t.Errorf("expected override URL, got %q", cfg.GetAPIURL())
	}

	if err := cfg.OverrideAPIURL(""); err != nil {
		t.Fatalf("clearing override failed: %v", err)
	}
	if cfg.GetAPIURL() != "https://persisted.example.com" {
		t.Errorf("expected persisted URL after clearing override, got %q", cfg.GetAPIURL())
	}

	if err := cfg.SetAPIURL("not a url"); err == nil {
		t.Error("SetAPIURL should reject invalid URLs")
	}
}

func TestConfig_PicturesDir(t *testing.T) {
	cfg := &Config{}
	if cfg.GetPicturesDir() == "" {
		t.Error("GetPicturesDir should never be empty")
	}

	cfg.SetPicturesDir("/srv/photos")
	if got := cfg.GetPicturesDir(); got != "/srv/photos" {
		t.Errorf("GetPicturesDir() = %q, want /srv/photos", got)
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	t.Setenv(APIURLEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := &Config{filePath: path}
	cfg.SetTheme("dracula")
	cfg.SetMediaAccess(MediaAccessDenied)
	cfg.SetNotificationsEnabled(true)
	cfg.SetServerDefaults(ServerDefaults{Status: "lost", Location: "Assis"})
	if err := cfg.SetAPIURL("https://api.example.com"); err != nil {
		t.Fatalf("SetAPIURL() failed: %v", err)
	}
	if err := cfg.OverrideAPIURL("http://override.local"); err != nil {
		t.Fatalf("OverrideAPIURL() failed: %v", err)
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if loaded.GetTheme() != "dracula" {
		t.Errorf("theme = %q, want dracula", loaded.GetTheme())
	}
	if loaded.GetMediaAccess() != MediaAccessDenied {
		t.Errorf("media access = %q, want denied", loaded.GetMediaAccess())
	}
	if got := loaded.GetServerDefaults(); got.Status != "lost" || got.Location != "Assis" {
		t.Errorf("server defaults = %+v", got)
	}
	if loaded.GetAPIURL() != "https://api.example.com" {
		t.Errorf("override must not be persisted, got %q", loaded.GetAPIURL())
	}
}

func TestConfig_SaveError(t *testing.T) {
	cfg := &Config{}
	cfg.SetFilePath("/nonexistent/directory/\x00/config.json")

	err := cfg.Save()
	if err == nil {
		t.Fatal("expected Save() to fail")
	}
	if !perrors.Is(err, perrors.KindConfig) {
		t.Errorf("expected KindConfig error, got %v", err)
	}
}

func TestConfig_SaveRaceWithMutations(t *testing.T) {
	t.Parallel()

	// Detects races between Save() and setters when run with -race.
	configPath := filepath.Join(t.TempDir(), "config.json")
	cfg := &Config{filePath: configPath}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				cfg.SetNotificationsEnabled((id+j)%2 == 0)
				cfg.SetTheme("nord")
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_ = cfg.Save()
			}
		}()
	}
	wg.Wait()

	if err := cfg.Save(); err != nil {
		t.Fatalf("Final save failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	var loaded map[string]any
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Config file is corrupted (invalid JSON): %v", err)
	}
}

func TestConfig_JSONOmitsOverride(t *testing.T) {
	t.Setenv(APIURLEnv, "https://env.example.com")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.SetTheme("nord")

	data, err := cfg.JSON()
	if err != nil {
		t.Fatalf("JSON() failed: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["theme"] != "nord" {
		t.Errorf("theme = %v", got["theme"])
	}
	if _, ok := got["api_url"]; ok {
		t.Error("env override must not be persisted")
	}
}
