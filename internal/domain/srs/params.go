package srs

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MinEase is the floor every ease is clamped to on a lapse.
const MinEase = 130.0

// ErrInvalidSettings is returned when scheduling settings fail validation.
var ErrInvalidSettings = errors.New("invalid scheduling settings")

// Settings defines all configurable parameters of the scheduling algorithm.
type Settings struct {
	// BaseEase is the ease of a brand-new item before link weighting, in percent.
	BaseEase float64 `validate:"gte=130"`

	// LapseIntervalChange multiplies the interval on a Hard response.
	LapseIntervalChange float64 `validate:"gt=0,lte=1"`

	// EasyBonus multiplies the interval on an Easy response.
	EasyBonus float64 `validate:"gte=1"`

	// MaximumInterval caps every interval, in days.
	MaximumInterval int `validate:"gte=1"`

	// MaxLinkFactor caps how much linked notes influence a new note's ease.
	MaxLinkFactor float64 `validate:"gte=0,lte=1"`

	// LoadBalance spreads due dates over a fuzz window using the due-date histogram.
	LoadBalance bool
}

// SettingsConfig allows overriding the defaults when creating Settings.
// Zero values keep the default.
type SettingsConfig struct {
	BaseEase            float64
	LapseIntervalChange float64
	EasyBonus           float64
	MaximumInterval     int
	MaxLinkFactor       *float64
	LoadBalance         *bool
}

// NewDefaultSettings creates Settings with default values.
func NewDefaultSettings() *Settings {
	return &Settings{
		BaseEase:            250,
		LapseIntervalChange: 0.5,
		EasyBonus:           1.3,
		MaximumInterval:     36500,
		MaxLinkFactor:       1.0,
		LoadBalance:         true,
	}
}

// NewSettings creates Settings from the defaults and the given overrides,
// then validates the result.
func NewSettings(config SettingsConfig) (*Settings, error) {
	settings := NewDefaultSettings()

	if config.BaseEase > 0 {
		settings.BaseEase = config.BaseEase
	}
	if config.LapseIntervalChange > 0 {
		settings.LapseIntervalChange = config.LapseIntervalChange
	}
	if config.EasyBonus > 0 {
		settings.EasyBonus = config.EasyBonus
	}
	if config.MaximumInterval > 0 {
		settings.MaximumInterval = config.MaximumInterval
	}
	// A zero link factor is meaningful, so it is only applied when set.
	if config.MaxLinkFactor != nil {
		settings.MaxLinkFactor = *config.MaxLinkFactor
	}
	if config.LoadBalance != nil {
		settings.LoadBalance = *config.LoadBalance
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks every field against its allowed range.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}
