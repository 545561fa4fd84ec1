package rules

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

// ErrUnknownPreset is returned by Preset for names it does not know.
var ErrUnknownPreset = errors.New("unknown rule preset")

// Tier is a risk score and the pattern that triggers it.
type Tier struct {
	Score   int    `yaml:"score"`
	Pattern string `yaml:"pattern"`
}

// Strategy is a strategy tag and its trigger patterns.
type Strategy struct {
	Tag      string   `yaml:"tag"`
	Patterns []string `yaml:"patterns"`
}

// RuleSet is the uncompiled, serializable form of a turns.Config.
type RuleSet struct {
	Name       string     `yaml:"name"`
	Markers    []string   `yaml:"markers"`
	Tiers      []Tier     `yaml:"tiers"`
	Strategies []Strategy `yaml:"strategies"`
}

// LoadFile reads a YAML rule set. Unknown keys are rejected.
func LoadFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var rs RuleSet
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("decode rules %s: %w", path, err)
	}
	if rs.Name == "" {
		rs.Name = path
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Marshal renders the rule set as YAML.
func (rs RuleSet) Marshal() ([]byte, error) {
	return yaml.Marshal(rs)
}

// Validate checks the rule set without compiling it into a config.
func (rs RuleSet) Validate() error {
	_, err := rs.Compile()
	return err
}

// Compile turns the rule set into a turns.Config. Tier order is kept exactly
// as written; a bad pattern is reported with its location.
func (rs RuleSet) Compile() (turns.Config, error) {
	var cfg turns.Config
	if len(rs.Tiers) == 0 {
		return cfg, fmt.Errorf("rule set %q: no risk tiers", rs.Name)
	}

	cfg.Markers = append([]string(nil), rs.Markers...)
	for i, m := range rs.Markers {
		if m == "" {
			return turns.Config{}, fmt.Errorf("rule set %q: marker %d is empty", rs.Name, i)
		}
	}

	for i, t := range rs.Tiers {
		re, err := regexp.Compile(t.Pattern)
		if err != nil {
			return turns.Config{}, fmt.Errorf("rule set %q: tier %d pattern %q: %w", rs.Name, i, t.Pattern, err)
		}
		cfg.Tiers = append(cfg.Tiers, turns.RiskTier{Score: t.Score, Pattern: re})
	}

	seen := make(map[string]bool, len(rs.Strategies))
	for _, s := range rs.Strategies {
		if s.Tag == "" {
			return turns.Config{}, fmt.Errorf("rule set %q: strategy with empty tag", rs.Name)
		}
		if seen[s.Tag] {
			return turns.Config{}, fmt.Errorf("rule set %q: duplicate strategy %q", rs.Name, s.Tag)
		}
		seen[s.Tag] = true

		r := turns.StrategyRule{Tag: s.Tag}
		for _, p := range s.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return turns.Config{}, fmt.Errorf("rule set %q: strategy %q pattern %q: %w", rs.Name, s.Tag, p, err)
			}
			r.Patterns = append(r.Patterns, re)
		}
		cfg.Strategies = append(cfg.Strategies, r)
	}

	return cfg, nil
}
