package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// MatchingFile is the parsed optional matching YAML. Everything in it layers
// on top of the built-in strategies and tunables.
type MatchingFile struct {
	Strategies map[string]StrategyWeights `mapstructure:"strategies"`
	Tunables   TunablesOverride           `mapstructure:"tunables"`
	Regions    map[string][]string        `mapstructure:"regions"`
}

type StrategyWeights struct {
	SkillOverlap       float64 `mapstructure:"skill_overlap"`
	ExperienceFit      float64 `mapstructure:"experience_fit"`
	LocationFit        float64 `mapstructure:"location_fit"`
	SemanticSimilarity float64 `mapstructure:"semantic_similarity"`
	CompensationFit    float64 `mapstructure:"compensation_fit"`
}

// TunablesOverride uses pointers so an absent key keeps the default while an
// explicit zero still overrides.
type TunablesOverride struct {
	EquivalentWeight   *float64 `mapstructure:"equivalent_weight"`
	PrerequisiteCredit *float64 `mapstructure:"prerequisite_credit"`
	PreferredWeight    *float64 `mapstructure:"preferred_weight"`
	OverqualFloor      *float64 `mapstructure:"overqual_floor"`
	CompensationMaxGap *float64 `mapstructure:"compensation_max_gap"`
}

// LoadMatchingFile reads the matching YAML at path. An empty path is not an
// error; a set path that cannot be read or parsed is.
func LoadMatchingFile(path string) (MatchingFile, error) {
	var out MatchingFile
	if strings.TrimSpace(path) == "" {
		return out, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return out, fmt.Errorf("read matching config %s: %w", path, err)
	}
	if err := v.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("parse matching config %s: %w", path, err)
	}
	return out, nil
}
