package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ProviderName is the provider key under which remote identifiers are stored
// on mapped entities. It also names the plugin directory that may hold an
// optional cookies.txt.
const ProviderName = "YoutubeAutoMetadata"

// IdentifierScheme selects how embedded identifiers are interpreted.
type IdentifierScheme string

const (
	SchemeYTDLP         IdentifierScheme = "ytdlp"
	SchemeTubeArchivist IdentifierScheme = "tubearchivist"
)

// Paths contains directory configuration.
type Paths struct {
	CacheRoot   string `toml:"cache_root"`
	PluginsRoot string `toml:"plugins_root"`
	LogDir      string `toml:"log_dir"`
}

// Lookup contains configuration for identification and matching.
type Lookup struct {
	IdentifierScheme           string `toml:"identifier_scheme"`
	EnableTitleLookup          bool   `toml:"enable_title_lookup"`
	SearchResultLimit          int    `toml:"search_result_limit"`
	EnableAutoEpisodeIndexing  bool   `toml:"enable_auto_episode_indexing"`
	PreferUploaderAsSeriesName bool   `toml:"prefer_uploader_as_series_name"`
}

// YtDlp contains configuration for the search/fetch backend binary.
type YtDlp struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// AI contains configuration for the optional metadata cleanup pass.
type AI struct {
	Enabled            bool   `toml:"enabled"`
	DescriptionCleanup bool   `toml:"description_cleanup"`
	APIKey             string `toml:"api_key"`
	BaseURL            string `toml:"base_url"`
	Model              string `toml:"model"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
}

// History contains configuration for the local resolution history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ytmeta.
//
// Configuration sections by subsystem:
//   - Paths: cache, plugin, and log directories
//   - Lookup: identifier scheme and matching toggles
//   - YtDlp: backend binary and invocation timeout
//   - AI: chat-completion cleanup settings
//   - History: local resolution history database
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Lookup  Lookup  `toml:"lookup"`
	YtDlp   YtDlp   `toml:"ytdlp"`
	AI      AI      `toml:"ai"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ytmeta/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ytmeta.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CacheRoot, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CookieFile returns the well-known cookies.txt location. Absence of the file
// is not an error; callers attach it only when present.
func (c *Config) CookieFile() string {
	return filepath.Join(c.Paths.PluginsRoot, ProviderName, "cookies.txt")
}

// HistoryPath returns the resolution history database location, defaulting to
// the log directory when not explicitly configured.
func (c *Config) HistoryPath() string {
	if strings.TrimSpace(c.History.Path) != "" {
		return c.History.Path
	}
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// Scheme returns the configured identifier scheme.
func (c *Config) Scheme() IdentifierScheme {
	if strings.EqualFold(strings.TrimSpace(c.Lookup.IdentifierScheme), string(SchemeTubeArchivist)) {
		return SchemeTubeArchivist
	}
	return SchemeYTDLP
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
