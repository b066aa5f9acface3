// Package config loads humanizer settings from defaults, an optional YAML
// file and HUMANIZER_* environment variables.
package config

import (
	"github.com/valpere/humanizer/internal/humanizer"
)

// Config is the root application configuration.
type Config struct {
	Log       LogConfig        `mapstructure:"log"`
	Store     StoreConfig      `mapstructure:"store"`
	Thesaurus ThesaurusConfig  `mapstructure:"thesaurus"`
	Toolkit   string           `mapstructure:"toolkit"`
	Policy    humanizer.Policy `mapstructure:"policy"`
	Protect   ProtectConfig    `mapstructure:"protect"`
	Language  LanguageConfig   `mapstructure:"language"`
	Batch     BatchConfig      `mapstructure:"batch"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig locates the SQLite database used for run history, protected
// terms, the imported lexicon and CSV checkpoints.
type StoreConfig struct {
	Path     string `mapstructure:"path"`
	Disabled bool   `mapstructure:"disabled"`
}

// Thesaurus sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
)

// ThesaurusConfig selects where synonyms come from. Path is required for the
// file source.
type ThesaurusConfig struct {
	Source     string `mapstructure:"source"`
	Path       string `mapstructure:"path"`
	Morphology bool   `mapstructure:"morphology"`
}

// ProtectConfig lists what the rewriter must leave alone.
type ProtectConfig struct {
	Placeholders bool     `mapstructure:"placeholders"`
	Terms        []string `mapstructure:"terms"`
}

// LanguageConfig controls the input language check.
type LanguageConfig struct {
	Check    bool   `mapstructure:"check"`
	Expected string `mapstructure:"expected"`
	Strict   bool   `mapstructure:"strict"`
}

// BatchConfig bounds concurrent and chunked work.
type BatchConfig struct {
	Workers  int `mapstructure:"workers"`
	MaxChars int `mapstructure:"max_chars"`
}
