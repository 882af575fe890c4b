package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"ytmeta/internal/config"
	"ytmeta/internal/history"
	"ytmeta/internal/logging"
	"ytmeta/internal/metacache"
	"ytmeta/internal/pipeline"
	"ytmeta/internal/refine"
	"ytmeta/internal/search"
	"ytmeta/internal/services/ytdlp"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) backendClient(cfg *config.Config) *ytdlp.CLI {
	return ytdlp.NewCLI(
		ytdlp.WithBinary(cfg.YtDlp.Binary),
		ytdlp.WithCookieFile(cfg.CookieFile()),
		ytdlp.WithTimeout(time.Duration(cfg.YtDlp.TimeoutSeconds)*time.Second),
	)
}

func (c *commandContext) matcher(cfg *config.Config) *search.Matcher {
	logger := logging.NewComponentLogger(c.ensureLogger(), "search")
	return search.NewMatcher(c.backendClient(cfg), logger)
}

func (c *commandContext) resolver() (*pipeline.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.ensureLogger()

	client := c.backendClient(cfg)
	cache := metacache.NewCache(cfg.Paths.CacheRoot, client,
		metacache.WithLogger(logging.NewComponentLogger(logger, "metacache")))
	refiner := refine.NewRefiner(cfg, logging.NewComponentLogger(logger, "refine"))
	matcher := search.NewMatcher(client, logging.NewComponentLogger(logger, "search"))

	return pipeline.New(cfg, matcher, client, cache, refiner,
		logging.NewComponentLogger(logger, "pipeline")), nil
}

func (c *commandContext) historyStore() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg)
}
