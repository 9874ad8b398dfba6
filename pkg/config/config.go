// Package config provides configuration management for the board.
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
	DefaultConfigPath = "/etc/webboard"
	ConfigFileName    = "board.yml"
)

// BoardConfig holds all board configuration settings
type BoardConfig struct {
	// ListingPageSize is the number of posts shown per listing page
	ListingPageSize int `yaml:"listing_page_size" json:"listing_page_size"`

	// SessionTTL is the login session lifetime in seconds
	SessionTTL int `yaml:"session_ttl" json:"session_ttl"`

	// CSRFTokenTTL is the anti-forgery token lifetime in seconds
	CSRFTokenTTL int `yaml:"csrf_token_ttl" json:"csrf_token_ttl"`

	// MaxAttachmentBytes caps the size of a single uploaded file
	MaxAttachmentBytes int64 `yaml:"max_attachment_bytes" json:"max_attachment_bytes"`

	// TemplateDir, when set, loads templates from disk and reloads them
	// on change instead of using the embedded copies
	TemplateDir string `yaml:"template_dir" json:"template_dir"`

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
	globalConfig *BoardConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *BoardConfig {
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
			// Return defaults on error
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
func newDefault() *BoardConfig {
	return &BoardConfig{
		ListingPageSize:    10,
		SessionTTL:         1800,
		CSRFTokenTTL:       3600,
		MaxAttachmentBytes: 10 << 20,
		TemplateDir:        "",
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*BoardConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("BOARD_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig BoardConfig
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
		"listing_page_size", "session_ttl", "csrf_token_ttl",
		"max_attachment_bytes", "template_dir",
	}
}

func (c *BoardConfig) applyFileConfig(file *BoardConfig) {
	if file.ListingPageSize != 0 {
		c.ListingPageSize = file.ListingPageSize
		c.sources["listing_page_size"] = "file"
	}
	if file.SessionTTL != 0 {
		c.SessionTTL = file.SessionTTL
		c.sources["session_ttl"] = "file"
	}
	if file.CSRFTokenTTL != 0 {
		c.CSRFTokenTTL = file.CSRFTokenTTL
		c.sources["csrf_token_ttl"] = "file"
	}
	if file.MaxAttachmentBytes != 0 {
		c.MaxAttachmentBytes = file.MaxAttachmentBytes
		c.sources["max_attachment_bytes"] = "file"
	}
	if file.TemplateDir != "" {
		c.TemplateDir = file.TemplateDir
		c.sources["template_dir"] = "file"
	}
}

func (c *BoardConfig) applyEnvConfig() {
	if val := os.Getenv("BOARD_LISTING_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ListingPageSize = i
			c.sources["listing_page_size"] = "environment"
		}
	}
	if val := os.Getenv("BOARD_SESSION_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTTL = i
			c.sources["session_ttl"] = "environment"
		}
	}
	if val := os.Getenv("BOARD_CSRF_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.CSRFTokenTTL = i
			c.sources["csrf_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("BOARD_MAX_ATTACHMENT_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.MaxAttachmentBytes = i
			c.sources["max_attachment_bytes"] = "environment"
		}
	}
	if val := os.Getenv("BOARD_TEMPLATE_DIR"); val != "" {
		c.TemplateDir = val
		c.sources["template_dir"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *BoardConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *BoardConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionLifetime returns the session TTL as a duration
func (c *BoardConfig) SessionLifetime() time.Duration {
	return time.Duration(c.SessionTTL) * time.Second
}

// CSRFLifetime returns the anti-forgery token TTL as a duration
func (c *BoardConfig) CSRFLifetime() time.Duration {
	return time.Duration(c.CSRFTokenTTL) * time.Second
}

// Validate validates the configuration
func (c *BoardConfig) Validate() error {
	if c.ListingPageSize <= 0 {
		return fmt.Errorf("invalid listing_page_size: %d", c.ListingPageSize)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid session_ttl: %d", c.SessionTTL)
	}
	if c.CSRFTokenTTL <= 0 {
		return fmt.Errorf("invalid csrf_token_ttl: %d", c.CSRFTokenTTL)
	}
	if c.MaxAttachmentBytes <= 0 {
		return fmt.Errorf("invalid max_attachment_bytes: %d", c.MaxAttachmentBytes)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *BoardConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "listing_page_size", Value: strconv.Itoa(c.ListingPageSize), Source: c.Source("listing_page_size")},
		{Name: "session_ttl", Value: strconv.Itoa(c.SessionTTL), Source: c.Source("session_ttl")},
		{Name: "csrf_token_ttl", Value: strconv.Itoa(c.CSRFTokenTTL), Source: c.Source("csrf_token_ttl")},
		{Name: "max_attachment_bytes", Value: strconv.FormatInt(c.MaxAttachmentBytes, 10), Source: c.Source("max_attachment_bytes")},
		{Name: "template_dir", Value: c.TemplateDir, Source: c.Source("template_dir")},
	}
}

// FormatText returns a text representation of the configuration
func (c *BoardConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-20s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-20s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-20s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}
