package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"kora/internal/domain"
)

type BetTier struct {
	ID      string `json:"id"`
	BaseBet int64  `json:"base_bet"`
}

type GameConfig struct {
	// TaxRate is the house rake taken from every pot before the
	// multiplier applies.
	TaxRate     float64   `json:"tax_rate"`
	DefaultTier string    `json:"default_tier"`
	Tiers       []BetTier `json:"tiers"`
	// DeckVariant selects the ruleset: "compact27" or "full31".
	DeckVariant         string `json:"deck_variant"`
	TurnDurationSeconds int    `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// seating a bot opposite a solo human.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetBaseBet returns the base bet for a given tier ID, or the default if
// not found.
func GetBaseBet(tierID string) int64 {
	if cfg == nil {
		return 100 // Safe default
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.BaseBet
		}
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.BaseBet
		}
	}

	return 100
}

// GetTaxRate returns the configured house rake, defaulting to the
// standard 2%.
func GetTaxRate() float64 {
	if cfg == nil || cfg.TaxRate <= 0 {
		return 0.02
	}
	return cfg.TaxRate
}

// GetDeckVariant returns the configured deck ruleset, defaulting to the
// full 31-card deck.
func GetDeckVariant() domain.Variant {
	if cfg == nil {
		return domain.VariantFull31
	}
	switch domain.Variant(cfg.DeckVariant) {
	case domain.VariantCompact27:
		return domain.VariantCompact27
	default:
		return domain.VariantFull31
	}
}

// GetBotAutoFillDelaySeconds returns the solo-lobby bot delay, defaulting
// to a short wait so matches start promptly.
func GetBotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 5
	}
	return cfg.BotAutoFillDelaySeconds
}

// GetTurnDurationSeconds returns the per-turn clock, defaulting to 30s.
func GetTurnDurationSeconds() int {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return 30
	}
	return cfg.TurnDurationSeconds
}
