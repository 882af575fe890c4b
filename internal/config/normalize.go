package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLookup()
	c.normalizeYtDlp()
	c.normalizeAI()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.CacheRoot, err = expandPath(c.Paths.CacheRoot); err != nil {
		return fmt.Errorf("paths.cache_root: %w", err)
	}
	if c.Paths.PluginsRoot, err = expandPath(c.Paths.PluginsRoot); err != nil {
		return fmt.Errorf("paths.plugins_root: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLookup() {
	c.Lookup.IdentifierScheme = strings.ToLower(strings.TrimSpace(c.Lookup.IdentifierScheme))
	if c.Lookup.IdentifierScheme == "" {
		c.Lookup.IdentifierScheme = defaultIdentifierScheme
	}
	if c.Lookup.SearchResultLimit <= 0 {
		c.Lookup.SearchResultLimit = defaultSearchLimit
	}
}

func (c *Config) normalizeYtDlp() {
	c.YtDlp.Binary = strings.TrimSpace(c.YtDlp.Binary)
	if c.YtDlp.Binary == "" {
		c.YtDlp.Binary = defaultYtDlpBinary
	}
	if c.YtDlp.TimeoutSeconds <= 0 {
		c.YtDlp.TimeoutSeconds = defaultYtDlpTimeout
	}
}

func (c *Config) normalizeAI() {
	if c.AI.APIKey == "" {
		if value, ok := os.LookupEnv("YTMETA_AI_API_KEY"); ok {
			c.AI.APIKey = value
		}
	}
	c.AI.APIKey = strings.TrimSpace(c.AI.APIKey)
	c.AI.BaseURL = strings.TrimRight(strings.TrimSpace(c.AI.BaseURL), "/")
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = defaultAIBaseURL
	}
	c.AI.Model = strings.TrimSpace(c.AI.Model)
	if c.AI.Model == "" {
		c.AI.Model = defaultAIModel
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = defaultAITimeout
	}
}

func (c *Config) normalizeHistory() error {
	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path == "" {
		return nil
	}
	expanded, err := expandPath(c.History.Path)
	if err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	c.History.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
