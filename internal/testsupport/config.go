package testsupport

import (
	"path/filepath"
	"testing"

	"ytmeta/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CacheRoot = filepath.Join(base, "cache")
	cfgVal.Paths.PluginsRoot = filepath.Join(base, "plugins")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.History.Path = filepath.Join(base, "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTitleLookup toggles search-based identification on the test config.
func WithTitleLookup(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lookup.EnableTitleLookup = enabled
	}
}

// WithAI enables refinement against the given base URL.
func WithAI(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.AI.Enabled = true
		b.cfg.AI.DescriptionCleanup = true
		b.cfg.AI.APIKey = "test"
		b.cfg.AI.BaseURL = baseURL
	}
}

// WithYtDlpBinary overrides the backend binary on the test config.
func WithYtDlpBinary(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YtDlp.Binary = path
	}
}
