package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.CacheRoot == "" {
		return errors.New("paths.cache_root must be set")
	}
	return nil
}

func (c *Config) validateLookup() error {
	switch c.Lookup.IdentifierScheme {
	case string(SchemeYTDLP), string(SchemeTubeArchivist):
	default:
		return fmt.Errorf("lookup.identifier_scheme: unsupported value %q", c.Lookup.IdentifierScheme)
	}
	if c.Lookup.SearchResultLimit > 25 {
		return errors.New("lookup.search_result_limit must be 25 or fewer")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
