package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/usint/config"
	ConfigFileName    = "usint.yml"
)

// UsintConfig holds all application settings.
type UsintConfig struct {
	// BindAddress is the host:port the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// HTTPAddress is the externally visible base URL, used in notification links
	HTTPAddress string `yaml:"http_address" json:"http_address"`

	// DatabaseURL points at the local revision-tracking database
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// CatalogURL points at the read-only observation catalog database
	CatalogURL string `yaml:"catalog_url" json:"catalog_url"`

	// ObsSSDir is the directory holding the observation support files
	ObsSSDir string `yaml:"obs_ss_dir" json:"obs_ss_dir"`

	// Admins receive error notifications
	Admins []string `yaml:"admins" json:"admins"`

	// TestNotifications logs notification mail instead of sending it
	TestNotifications bool `yaml:"test_notifications" json:"test_notifications"`

	// SendmailPath is the sendmail binary used for notifications
	SendmailPath string `yaml:"sendmail_path" json:"sendmail_path"`

	// SessionLifetimeMinutes bounds how long an identity header is trusted
	// without a fresh request
	SessionLifetimeMinutes int `yaml:"session_lifetime_minutes" json:"session_lifetime_minutes"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *UsintConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *UsintConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *UsintConfig {
	return &UsintConfig{
		BindAddress:            ":8080",
		HTTPAddress:            "http://127.0.0.1:8080",
		DatabaseURL:            "postgres://localhost/usint?sslmode=disable",
		CatalogURL:             "postgres://localhost/axafocat?sslmode=disable",
		ObsSSDir:               "/data/mta4/obs_ss",
		Admins:                 []string{},
		TestNotifications:      true,
		SendmailPath:           "/sbin/sendmail",
		SessionLifetimeMinutes: 60,
		sources:                make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*UsintConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("USINT_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig UsintConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "http_address", "database_url", "catalog_url",
		"obs_ss_dir", "admins", "test_notifications", "sendmail_path",
		"session_lifetime_minutes",
	}
}

func (c *UsintConfig) applyFileConfig(file *UsintConfig) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.HTTPAddress != "" {
		c.HTTPAddress = file.HTTPAddress
		c.sources["http_address"] = "file"
	}
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.CatalogURL != "" {
		c.CatalogURL = file.CatalogURL
		c.sources["catalog_url"] = "file"
	}
	if file.ObsSSDir != "" {
		c.ObsSSDir = file.ObsSSDir
		c.sources["obs_ss_dir"] = "file"
	}
	if len(file.Admins) > 0 {
		c.Admins = file.Admins
		c.sources["admins"] = "file"
	}
	if file.SendmailPath != "" {
		c.SendmailPath = file.SendmailPath
		c.sources["sendmail_path"] = "file"
	}
	if file.SessionLifetimeMinutes != 0 {
		c.SessionLifetimeMinutes = file.SessionLifetimeMinutes
		c.sources["session_lifetime_minutes"] = "file"
	}
}

func (c *UsintConfig) applyEnvConfig() {
	if val := os.Getenv("USINT_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("USINT_HTTP_ADDRESS"); val != "" {
		c.HTTPAddress = val
		c.sources["http_address"] = "environment"
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("USINT_CATALOG_URL"); val != "" {
		c.CatalogURL = val
		c.sources["catalog_url"] = "environment"
	}
	if val := os.Getenv("USINT_OBS_SS_DIR"); val != "" {
		c.ObsSSDir = val
		c.sources["obs_ss_dir"] = "environment"
	}
	if val := os.Getenv("USINT_ADMINS"); val != "" {
		c.Admins = splitAndTrim(val)
		c.sources["admins"] = "environment"
	}
	if val := os.Getenv("USINT_TEST_NOTIFICATIONS"); val != "" {
		c.TestNotifications = val == "true" || val == "1"
		c.sources["test_notifications"] = "environment"
	}
	if val := os.Getenv("USINT_SENDMAIL_PATH"); val != "" {
		c.SendmailPath = val
		c.sources["sendmail_path"] = "environment"
	}
	if val := os.Getenv("USINT_SESSION_LIFETIME_MINUTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionLifetimeMinutes = i
			c.sources["session_lifetime_minutes"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *UsintConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *UsintConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionLifetime returns the session lifetime as a duration
func (c *UsintConfig) SessionLifetime() time.Duration {
	return time.Duration(c.SessionLifetimeMinutes) * time.Minute
}

// Attributes returns all attributes with their values and sources, for the
// status endpoint and the CLI.
func (c *UsintConfig) Attributes() []Attribute {
	values := map[string]string{
		"bind_address":             c.BindAddress,
		"http_address":             c.HTTPAddress,
		"database_url":             redact(c.DatabaseURL),
		"catalog_url":              redact(c.CatalogURL),
		"obs_ss_dir":               c.ObsSSDir,
		"admins":                   strings.Join(c.Admins, ","),
		"test_notifications":       strconv.FormatBool(c.TestNotifications),
		"sendmail_path":            c.SendmailPath,
		"session_lifetime_minutes": strconv.Itoa(c.SessionLifetimeMinutes),
	}
	attrs := make([]Attribute, 0, len(values))
	for _, name := range attributeNames() {
		attrs = append(attrs, Attribute{
			Name:   name,
			Value:  values[name],
			Source: c.Source(name),
		})
	}
	return attrs
}

// redact strips credentials from a connection URL before display.
func redact(url string) string {
	at := strings.LastIndex(url, "@")
	if at < 0 {
		return url
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}

func splitAndTrim(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
