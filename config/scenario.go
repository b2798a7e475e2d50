package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// VictoryCondition selects which of the five monitors in §4.11 can end the
// episode (§6 Configuration: victory_condition).
type VictoryCondition int

const (
	VictoryNone VictoryCondition = iota
	VictoryConquest
	VictoryWonder
	VictoryRelic
	VictoryRegicide
	VictoryKingOfTheHill
	VictoryAny
)

func (v VictoryCondition) String() string {
	switch v {
	case VictoryConquest:
		return "Conquest"
	case VictoryWonder:
		return "Wonder"
	case VictoryRelic:
		return "Relic"
	case VictoryRegicide:
		return "Regicide"
	case VictoryKingOfTheHill:
		return "KingOfTheHill"
	case VictoryAny:
		return "Any"
	default:
		return "None"
	}
}

// ParseVictoryCondition maps a scenario file's string value to the enum.
func ParseVictoryCondition(s string) VictoryCondition {
	switch s {
	case "Conquest":
		return VictoryConquest
	case "Wonder":
		return VictoryWonder
	case "Relic":
		return VictoryRelic
	case "Regicide":
		return VictoryRegicide
	case "KingOfTheHill":
		return VictoryKingOfTheHill
	case "Any":
		return VictoryAny
	default:
		return VictoryNone
	}
}

// RewardWeights holds the per-resource reward shaping knobs from §6.
type RewardWeights struct {
	HeartReward     float32 `toml:"heart_reward" yaml:"heart_reward"`
	OreReward       float32 `toml:"ore_reward" yaml:"ore_reward"`
	BarReward       float32 `toml:"bar_reward" yaml:"bar_reward"`
	WoodReward      float32 `toml:"wood_reward" yaml:"wood_reward"`
	WaterReward     float32 `toml:"water_reward" yaml:"water_reward"`
	WheatReward     float32 `toml:"wheat_reward" yaml:"wheat_reward"`
	SpearReward     float32 `toml:"spear_reward" yaml:"spear_reward"`
	ArmorReward     float32 `toml:"armor_reward" yaml:"armor_reward"`
	FoodReward      float32 `toml:"food_reward" yaml:"food_reward"`
	ClothReward     float32 `toml:"cloth_reward" yaml:"cloth_reward"`
	TumorKillReward float32 `toml:"tumor_kill_reward" yaml:"tumor_kill_reward"`
	SurvivalPenalty float32 `toml:"survival_penalty" yaml:"survival_penalty"`
	DeathPenalty    float32 `toml:"death_penalty" yaml:"death_penalty"`
	VictoryReward   float32 `toml:"victory_reward" yaml:"victory_reward"`
}

// EngineConfig is the top-level scenario configuration (§6). It is the
// single struct both the TOML and YAML loaders populate.
type EngineConfig struct {
	MaxSteps       int     `toml:"max_steps" yaml:"max_steps"`
	Seed           int64   `toml:"seed" yaml:"seed"`
	TumorSpawnRate float64 `toml:"tumor_spawn_rate" yaml:"tumor_spawn_rate"`
	VictoryConditionName string `toml:"victory_condition" yaml:"victory_condition"`
	Rewards        RewardWeights `toml:"rewards" yaml:"rewards"`
}

// VictoryCondition resolves the configured victory_condition string into the
// typed enum, defaulting to VictoryNone for an unrecognized value.
func (c EngineConfig) VictoryCondition() VictoryCondition {
	return ParseVictoryCondition(c.VictoryConditionName)
}

// DefaultEngineConfig returns the engine's out-of-the-box defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxSteps:             1000,
		Seed:                 1,
		TumorSpawnRate:       0.02,
		VictoryConditionName: "None",
		Rewards: RewardWeights{
			HeartReward:     1.0,
			OreReward:       0.2,
			BarReward:       0.4,
			WoodReward:      0.1,
			WaterReward:     0.05,
			WheatReward:     0.1,
			SpearReward:     0.3,
			ArmorReward:     0.3,
			FoodReward:      0.1,
			ClothReward:     0.2,
			TumorKillReward: 0.5,
			SurvivalPenalty: -0.001,
			DeathPenalty:    -1.0,
			VictoryReward:   10.0,
		},
	}
}

// LoadScenarioTOML loads an EngineConfig from a TOML scenario file, starting
// from the defaults so a scenario only needs to override what it cares
// about.
func LoadScenarioTOML(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scenario %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scenario toml %q: %w", path, err)
	}
	return cfg, nil
}

// LoadScenarioYAML loads an EngineConfig from a YAML scenario file, for
// embedders who prefer YAML map/scenario packs to TOML.
func LoadScenarioYAML(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scenario %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scenario yaml %q: %w", path, err)
	}
	return cfg, nil
}
