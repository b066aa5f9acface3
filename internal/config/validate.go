package config

import (
	"fmt"
	"strings"

	"github.com/valpere/humanizer/internal/thesaurus"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	switch strings.ToLower(c.Toolkit) {
	case "prose", "basic":
	default:
		return fmt.Errorf("toolkit must be prose or basic (got %q)", c.Toolkit)
	}

	if err := c.Thesaurus.validate(c.Store); err != nil {
		return fmt.Errorf("thesaurus: %w", err)
	}

	if err := c.Policy.Validate(); err != nil {
		return err
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be >= 1 (got %d)", c.Batch.Workers)
	}
	if c.Batch.MaxChars < 0 {
		return fmt.Errorf("batch.max_chars must be >= 0 (got %d)", c.Batch.MaxChars)
	}

	return nil
}

func (t *ThesaurusConfig) validate(store StoreConfig) error {
	switch t.Source {
	case SourceEmbedded:
	case SourceFile:
		if t.Path == "" {
			return fmt.Errorf("path is required for the %s source", SourceFile)
		}
	case SourceSQLite:
		if store.Disabled {
			return fmt.Errorf("the %s source needs the store enabled", SourceSQLite)
		}
	default:
		return fmt.Errorf("source %q: %w", t.Source, thesaurus.ErrUnknownSource)
	}
	return nil
}
