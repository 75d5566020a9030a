package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/catalog"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
)

const (
	ProfileStandard = "standard"
	ProfileOneTwo   = "onetwo"
)

type Config struct {
	Addr       string        `env:"ADDR" envDefault:":8080"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SweepSpec  string        `env:"SWEEP_SPEC" envDefault:"@every 1m"`

	// RulesetProfile selects the game-1 ban protocol: "standard" (1-2-1) or
	// "onetwo" (1-2, RPS winner selects).
	RulesetProfile string `env:"RULESET" envDefault:"standard"`

	// CharacterSelectFirst orders character locks before stage bans.
	CharacterSelectFirst bool `env:"CHARACTER_SELECT_FIRST" envDefault:"false"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Rules materializes the configured ruleset over the stage catalog.
func (c Config) Rules() (engine.Ruleset, error) {
	var rules engine.Ruleset
	switch c.RulesetProfile {
	case ProfileStandard:
		rules = engine.StandardRuleset(catalog.StarterStageIDs(), catalog.CounterpickStageIDs())
	case ProfileOneTwo:
		rules = engine.OneTwoBanRuleset(catalog.StarterStageIDs(), catalog.CounterpickStageIDs())
	default:
		return engine.Ruleset{}, fmt.Errorf("unknown ruleset profile %q", c.RulesetProfile)
	}
	rules.CharacterSelectFirst = c.CharacterSelectFirst
	return rules, nil
}
