package config

import (
	"fmt"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage" validate:"required"`
	Vault      VaultConfig      `mapstructure:"vault" validate:"required"`
	Scheduling SchedulingConfig `mapstructure:"scheduling" validate:"required"`
	Review     ReviewConfig     `mapstructure:"review" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// LogFile, when set, receives a rotated copy of the log output.
	LogFile string `mapstructure:"log_file"`
}

// StorageConfig selects where schedules are persisted.
type StorageConfig struct {
	// Driver is vault (inline comments and front-matter), postgres or sqlite.
	Driver string `mapstructure:"driver" validate:"required,oneof=vault postgres sqlite"`
	URL    string `mapstructure:"url" validate:"required_unless=Driver vault"`
}

// VaultConfig describes the notes directory and how it is parsed.
type VaultConfig struct {
	Path                      string        `mapstructure:"path" validate:"required"`
	FlashcardTags             []string      `mapstructure:"flashcard_tags" validate:"min=1,dive,startswith=#"`
	NoteReviewTags            []string      `mapstructure:"note_review_tags" validate:"dive,startswith=#"`
	ConvertHighlightsToClozes bool          `mapstructure:"convert_highlights_to_clozes"`
	Watch                     bool          `mapstructure:"watch"`
	WatchDebounce             time.Duration `mapstructure:"watch_debounce" validate:"gte=0"`
}

// SchedulingConfig mirrors srs.Settings.
type SchedulingConfig struct {
	BaseEase            float64 `mapstructure:"base_ease" validate:"gte=130"`
	LapseIntervalChange float64 `mapstructure:"lapse_interval_change" validate:"gt=0,lte=1"`
	EasyBonus           float64 `mapstructure:"easy_bonus" validate:"gte=1"`
	MaximumInterval     int     `mapstructure:"maximum_interval" validate:"gte=1"`
	MaxLinkFactor       float64 `mapstructure:"max_link_factor" validate:"gte=0,lte=1"`
	LoadBalance         bool    `mapstructure:"load_balance"`
}

// ReviewConfig controls review sessions.
type ReviewConfig struct {
	DeckOrder      string `mapstructure:"deck_order" validate:"required,oneof=sequential random every-card-random"`
	CardOrder      string `mapstructure:"card_order" validate:"required,oneof=new-first-sequential due-first-sequential new-first-random due-first-random every-card-random"`
	BurySiblings   bool   `mapstructure:"bury_siblings"`
	Mode           string `mapstructure:"mode" validate:"required,oneof=review cram"`
	OpenRandomNote bool   `mapstructure:"open_random_note"`
}

// SchedulingSettings converts the scheduling section to algorithm settings.
func (c *Config) SchedulingSettings() *srs.Settings {
	return &srs.Settings{
		BaseEase:            c.Scheduling.BaseEase,
		LapseIntervalChange: c.Scheduling.LapseIntervalChange,
		EasyBonus:           c.Scheduling.EasyBonus,
		MaximumInterval:     c.Scheduling.MaximumInterval,
		MaxLinkFactor:       c.Scheduling.MaxLinkFactor,
		LoadBalance:         c.Scheduling.LoadBalance,
	}
}

// IteratorOrder converts the review orders to a deck iterator order.
func (c *Config) IteratorOrder() (deck.IteratorOrder, error) {
	deckOrder, err := deck.ParseDeckOrder(c.Review.DeckOrder)
	if err != nil {
		return deck.IteratorOrder{}, fmt.Errorf("review.deck_order: %w", err)
	}
	cardOrder, err := deck.ParseCardOrder(c.Review.CardOrder)
	if err != nil {
		return deck.IteratorOrder{}, fmt.Errorf("review.card_order: %w", err)
	}
	return deck.IteratorOrder{DeckOrder: deckOrder, CardOrder: cardOrder}, nil
}
