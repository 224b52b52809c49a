package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "OSR"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the given config file instead of
// searching for osr.{yaml,toml,json}. An empty path searches.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("osr")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/osr")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can override keys
// that have no value in a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_file", "")

	v.SetDefault("storage.driver", "vault")
	v.SetDefault("storage.url", "")

	v.SetDefault("vault.path", "")
	v.SetDefault("vault.flashcard_tags", []string{"#flashcards"})
	v.SetDefault("vault.note_review_tags", []string{"#review"})
	v.SetDefault("vault.convert_highlights_to_clozes", true)
	v.SetDefault("vault.watch", false)
	v.SetDefault("vault.watch_debounce", 500*time.Millisecond)

	v.SetDefault("scheduling.base_ease", 250.0)
	v.SetDefault("scheduling.lapse_interval_change", 0.5)
	v.SetDefault("scheduling.easy_bonus", 1.3)
	v.SetDefault("scheduling.maximum_interval", 36500)
	v.SetDefault("scheduling.max_link_factor", 1.0)
	v.SetDefault("scheduling.load_balance", true)

	v.SetDefault("review.deck_order", "sequential")
	v.SetDefault("review.card_order", "due-first-sequential")
	v.SetDefault("review.bury_siblings", false)
	v.SetDefault("review.mode", "review")
	v.SetDefault("review.open_random_note", false)
}
