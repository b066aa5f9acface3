package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/valpere/humanizer/internal/humanizer"
)

// EnvPrefix is prepended to every environment override, e.g.
// HUMANIZER_POLICY_SYNONYM or HUMANIZER_LOG_LEVEL.
const EnvPrefix = "HUMANIZER"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.path", "./data/humanizer.db")
	v.SetDefault("store.disabled", false)

	v.SetDefault("thesaurus.source", SourceEmbedded)
	v.SetDefault("thesaurus.path", "")
	v.SetDefault("thesaurus.morphology", true)

	v.SetDefault("toolkit", "prose")

	p := humanizer.DefaultPolicy()
	v.SetDefault("policy.filler", p.Filler)
	v.SetDefault("policy.synonym", p.Synonym)
	v.SetDefault("policy.marker", p.Marker)
	v.SetDefault("policy.transition", p.Transition)
	v.SetDefault("policy.merge", p.Merge)
	v.SetDefault("policy.artifact_gate", p.ArtifactGate)
	v.SetDefault("policy.fragment", p.Fragment)
	v.SetDefault("policy.restatement", p.Restatement)

	v.SetDefault("protect.placeholders", false)
	v.SetDefault("protect.terms", []string{})

	v.SetDefault("language.check", true)
	v.SetDefault("language.expected", "en")
	v.SetDefault("language.strict", false)

	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.max_chars", 0)
}

// Load reads configuration. Priority: ENV > YAML > defaults.
// An empty path looks for ./humanizer.yaml and silently falls back to
// defaults when it is absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("humanizer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}
