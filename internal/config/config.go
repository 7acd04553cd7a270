package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	perrors "github.com/petpost/petpost/internal/errors"
)

// DefaultAPIURL is used when neither the config file, the environment nor
// the --api-url flag name a backend.
const DefaultAPIURL = "http://localhost:3000"

// APIURLEnv overrides the configured backend for one process.
const APIURLEnv = "PETPOST_API_URL"

// Media access grant values
const (
	MediaAccessUnset   = ""
	MediaAccessGranted = "granted"
	MediaAccessDenied  = "denied"
)

// ServerDefaults are values the backend expects on every publication that
// the user does not edit. They fill in blank draft fields at submission time.
type ServerDefaults struct {
	Status   string `json:"status,omitempty"`
	Location string `json:"location,omitempty"`
}

// Built-in server defaults
const (
	DefaultStatus   = "published"
	DefaultLocation = "Marilia"
)

// Config holds the application configuration
type Config struct {
	APIURL               string         `json:"api_url,omitempty"`               // Backend base URL, e.g. "https://api.example.com"
	Theme                string         `json:"theme,omitempty"`                 // UI theme name (e.g., "tokyo-night", "nord")
	NotificationsEnabled bool           `json:"notifications_enabled,omitempty"` // Desktop notifications for submission results
	PicturesDir          string         `json:"pictures_dir,omitempty"`          // Directory the image picker lists
	MediaAccess          string         `json:"media_access,omitempty"`          // "granted", "denied" or unset (ask)
	ServerDefaults       ServerDefaults `json:"server_defaults,omitempty"`

	mu          sync.RWMutex
	filePath    string
	apiOverride string // from env or flag, never persisted
}

// Dir returns the path to the petpost state directory (~/.petpost)
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".petpost"), nil
}

// CacheDir returns the directory for files petpost creates itself,
// such as images pasted from the clipboard.
func CacheDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, perrors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, perrors.ConfigLoadFailed(path, err)
		}
	}

	if env := strings.TrimSpace(os.Getenv(APIURLEnv)); env != "" {
		cfg.apiOverride = strings.TrimRight(env, "/")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, raw := range []string{c.APIURL, c.apiOverride} {
		if raw == "" {
			continue
		}
		if err := validateAPIURL(raw); err != nil {
			return err
		}
	}

	switch c.MediaAccess {
	case MediaAccessUnset, MediaAccessGranted, MediaAccessDenied:
	default:
		return perrors.ConfigInvalid(fmt.Sprintf("unknown media_access value %q", c.MediaAccess))
	}

	return nil
}

func validateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return perrors.ConfigInvalid(fmt.Sprintf("invalid api url %q: %v", raw, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return perrors.ConfigInvalid(fmt.Sprintf("api url %q must use http or https", raw))
	}
	if u.Host == "" {
		return perrors.ConfigInvalid(fmt.Sprintf("api url %q has no host", raw))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// JSON returns the persisted settings as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.MarshalIndent(c, "", "  ")
}

// SetFilePath sets where Save writes. Used by tests.
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// FilePath returns where Save writes
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetAPIURL returns the effective backend base URL without a trailing slash.
// Precedence: override (env or flag) > config file > DefaultAPIURL.
func (c *Config) GetAPIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.apiOverride != "" {
		return c.apiOverride
	}
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	return DefaultAPIURL
}

// SetAPIURL sets the persisted backend base URL
func (c *Config) SetAPIURL(raw string) error {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if err := validateAPIURL(raw); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIURL = raw
	return nil
}

// OverrideAPIURL sets a process-only backend URL that takes precedence over
// the persisted one. An empty string clears the override.
func (c *Config) OverrideAPIURL(raw string) error {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw != "" {
		if err := validateAPIURL(raw); err != nil {
			return err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiOverride = raw
	return nil
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetPicturesDir returns the directory the picker lists, defaulting to
// ~/Pictures and falling back to the home directory.
func (c *Config) GetPicturesDir() string {
	c.mu.RLock()
	dir := c.PicturesDir
	c.mu.RUnlock()
	if dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	pictures := filepath.Join(home, "Pictures")
	if info, err := os.Stat(pictures); err == nil && info.IsDir() {
		return pictures
	}
	return home
}

// SetPicturesDir sets the directory the picker lists
func (c *Config) SetPicturesDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PicturesDir = dir
}

// GetMediaAccess returns the persisted media access grant
func (c *Config) GetMediaAccess() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.MediaAccess
}

// SetMediaAccess records the user's media access decision
func (c *Config) SetMediaAccess(access string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MediaAccess = access
}

// GetServerDefaults returns the server defaults with built-in values filled in
func (c *Config) GetServerDefaults() ServerDefaults {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d := c.ServerDefaults
	if d.Status == "" {
		d.Status = DefaultStatus
	}
	if d.Location == "" {
		d.Location = DefaultLocation
	}
	return d
}

// SetServerDefaults replaces the server defaults
func (c *Config) SetServerDefaults(d ServerDefaults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerDefaults = d
}
