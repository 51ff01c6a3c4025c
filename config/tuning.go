package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the thresholds of the configurable bots. Values are copied
// into each bot at construction and never change during a game.
type Tuning struct {
	Miner      MinerConfig      `yaml:"miner"`
	Aggressive AggressiveConfig `yaml:"aggressive"`
	Minimax    MinimaxConfig    `yaml:"minimax"`
	Mole       MoleConfig       `yaml:"mole"`
}

type MinerConfig struct {
	HealBelow int `yaml:"heal_below"` // 1-99
}

type AggressiveConfig struct {
	CriticalLife  int `yaml:"critical_life"`  // heal first at or below, 1-99
	LowLife       int `yaml:"low_life"`       // heal when not chasing at or below, 1-99
	ChaseDistance int `yaml:"chase_distance"` // chase a target closer than this, 1-50
}

type MinimaxConfig struct {
	Depth          int     `yaml:"depth"`           // plies, 0-16
	TieBreak       string  `yaml:"tie_break"`       // value or none
	TieProbability float64 `yaml:"tie_probability"` // 0-1
}

type MoleConfig struct {
	FriendlyFireAvoidance bool   `yaml:"friendly_fire_avoidance"`
	FriendlyName          string `yaml:"friendly_name"` // empty matches our own name

	NearbyTavernHealThreshold int `yaml:"nearby_tavern_heal_threshold"` // 1-99
	HPThresholdOpening        int `yaml:"hp_threshold_opening"`         // 0-100
	HPThresholdMid            int `yaml:"hp_threshold_mid"`             // 0-100
	HPThresholdEnd            int `yaml:"hp_threshold_end"`             // 0-100
	DangerHPModifier          int `yaml:"danger_hp_modifier"`           // 0-50

	PhaseOpeningEnd float64 `yaml:"phase_opening_end"` // 0-1, share of max turns
	PhaseMidEnd     float64 `yaml:"phase_mid_end"`     // PhaseOpeningEnd-1

	MinTurnsToHoldMine int `yaml:"min_turns_to_hold_mine"` // 1-20

	FleeDangerThreshold    int  `yaml:"flee_danger_threshold"` // 1-4, 4 never flees on danger alone
	DangerCheckEnabled     bool `yaml:"danger_check_enabled"`
	DangerCheckHPThreshold int  `yaml:"danger_check_hp_threshold"` // 0-100
	AllowStayAsFallback    bool `yaml:"allow_stay_as_fallback"`

	RespawnDetectionEnabled bool `yaml:"respawn_detection_enabled"`
	RespawnAggressiveTurns  int  `yaml:"respawn_aggressive_turns"` // 0-100

	OpportunisticKillsEnabled         bool `yaml:"opportunistic_kills_enabled"`
	OpportunisticKillMaxDistance      int  `yaml:"opportunistic_kill_max_distance"`       // 1-20
	OpportunisticKillEnemyHPThreshold int  `yaml:"opportunistic_kill_enemy_hp_threshold"` // 1-100
	OpportunisticKillHPAdvantage      int  `yaml:"opportunistic_kill_hp_advantage"`       // 0-100
	OpportunisticKillMinEnemyMines    int  `yaml:"opportunistic_kill_min_enemy_mines"`    // 0+
	OpportunisticKillMinOurHP         int  `yaml:"opportunistic_kill_min_our_hp"`         // 0-100
}

func DefaultTuning() Tuning {
	return Tuning{
		Miner: MinerConfig{HealBelow: 50},
		Aggressive: AggressiveConfig{
			CriticalLife:  40,
			LowLife:       60,
			ChaseDistance: 5,
		},
		Minimax: MinimaxConfig{
			Depth:          8,
			TieBreak:       "value",
			TieProbability: 0.3,
		},
		Mole: DefaultMole(),
	}
}

func DefaultMole() MoleConfig {
	return MoleConfig{
		FriendlyFireAvoidance:             true,
		NearbyTavernHealThreshold:         80,
		HPThresholdOpening:                30,
		HPThresholdMid:                    45,
		HPThresholdEnd:                    55,
		DangerHPModifier:                  15,
		PhaseOpeningEnd:                   0.25,
		PhaseMidEnd:                       0.85,
		MinTurnsToHoldMine:                2,
		FleeDangerThreshold:               4,
		DangerCheckEnabled:                true,
		DangerCheckHPThreshold:            15,
		AllowStayAsFallback:               false,
		RespawnDetectionEnabled:           true,
		RespawnAggressiveTurns:            10,
		OpportunisticKillsEnabled:         true,
		OpportunisticKillMaxDistance:      5,
		OpportunisticKillEnemyHPThreshold: 60,
		OpportunisticKillHPAdvantage:      20,
		OpportunisticKillMinEnemyMines:    2,
		OpportunisticKillMinOurHP:         40,
	}
}

// LoadTuning reads a YAML file over the defaults. An empty path returns the
// defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning file %s: %w", path, err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	return errors.Join(t.Miner.Validate(), t.Aggressive.Validate(), t.Minimax.Validate(), t.Mole.Validate())
}

func (c MinerConfig) Validate() error {
	return inRange("miner.heal_below", c.HealBelow, 1, 99)
}

func (c AggressiveConfig) Validate() error {
	return errors.Join(
		inRange("aggressive.critical_life", c.CriticalLife, 1, 99),
		inRange("aggressive.low_life", c.LowLife, 1, 99),
		inRange("aggressive.chase_distance", c.ChaseDistance, 1, 50),
	)
}

func (c MinimaxConfig) Validate() error {
	var errs []error
	errs = append(errs, inRange("minimax.depth", c.Depth, 0, 16))
	if c.TieBreak != "value" && c.TieBreak != "none" {
		errs = append(errs, fmt.Errorf("minimax.tie_break must be value or none, got %q", c.TieBreak))
	}
	if c.TieProbability < 0 || c.TieProbability > 1 {
		errs = append(errs, fmt.Errorf("minimax.tie_probability must be in [0, 1], got %v", c.TieProbability))
	}
	return errors.Join(errs...)
}

func (c MoleConfig) Validate() error {
	errs := []error{
		inRange("mole.nearby_tavern_heal_threshold", c.NearbyTavernHealThreshold, 1, 99),
		inRange("mole.hp_threshold_opening", c.HPThresholdOpening, 0, 100),
		inRange("mole.hp_threshold_mid", c.HPThresholdMid, 0, 100),
		inRange("mole.hp_threshold_end", c.HPThresholdEnd, 0, 100),
		inRange("mole.danger_hp_modifier", c.DangerHPModifier, 0, 50),
		inRange("mole.min_turns_to_hold_mine", c.MinTurnsToHoldMine, 1, 20),
		inRange("mole.flee_danger_threshold", c.FleeDangerThreshold, 1, 4),
		inRange("mole.danger_check_hp_threshold", c.DangerCheckHPThreshold, 0, 100),
		inRange("mole.respawn_aggressive_turns", c.RespawnAggressiveTurns, 0, 100),
		inRange("mole.opportunistic_kill_max_distance", c.OpportunisticKillMaxDistance, 1, 20),
		inRange("mole.opportunistic_kill_enemy_hp_threshold", c.OpportunisticKillEnemyHPThreshold, 1, 100),
		inRange("mole.opportunistic_kill_hp_advantage", c.OpportunisticKillHPAdvantage, 0, 100),
		inRange("mole.opportunistic_kill_min_enemy_mines", c.OpportunisticKillMinEnemyMines, 0, 1000),
		inRange("mole.opportunistic_kill_min_our_hp", c.OpportunisticKillMinOurHP, 0, 100),
	}
	if c.PhaseOpeningEnd < 0 || c.PhaseOpeningEnd > c.PhaseMidEnd || c.PhaseMidEnd > 1 {
		errs = append(errs, fmt.Errorf("mole phases need 0 <= opening end <= mid end <= 1, got %v and %v", c.PhaseOpeningEnd, c.PhaseMidEnd))
	}
	return errors.Join(errs...)
}

func inRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be in [%d, %d], got %d", name, lo, hi, v)
	}
	return nil
}
