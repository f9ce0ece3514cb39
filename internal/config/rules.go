package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Rules holds the game-rule configuration: categories, timers, point
// values, and per-game defaults. Values come from an optional YAML file;
// every field has a sensible default so the server runs without one.
type Rules struct {
	Categories      []string `yaml:"categories"`
	ExcludedLetters []string `yaml:"excluded_letters"`

	CountdownSeconds int `yaml:"countdown_seconds"`
	GraceSeconds     int `yaml:"grace_seconds"`
	VotingSeconds    int `yaml:"voting_seconds"`

	TargetScore int `yaml:"target_score"`
	MaxRounds   int `yaml:"max_rounds"`

	UniquePoints    int   `yaml:"unique_points"`
	DuplicatePoints int   `yaml:"duplicate_points"`
	TieIsValid      *bool `yaml:"tie_is_valid"`
}

// DefaultRules returns the rule set observed in the stock game: six
// categories, rare letters excluded, 20 points to win over at most 5
// rounds, 10/5 unique/duplicate scoring with ties counting as valid.
func DefaultRules() Rules {
	tie := true
	return Rules{
		Categories:       []string{"City", "Country", "Animal", "Food", "Brand", "Movie/TV Show"},
		ExcludedLetters:  []string{"K", "Q", "W", "X", "Y", "Z"},
		CountdownSeconds: 5,
		GraceSeconds:     30,
		VotingSeconds:    60,
		TargetScore:      20,
		MaxRounds:        5,
		UniquePoints:     10,
		DuplicatePoints:  5,
		TieIsValid:       &tie,
	}
}

// LoadRules reads a YAML rules file and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate rejects rule sets that cannot drive a game.
func (r Rules) Validate() error {
	if len(r.Categories) == 0 {
		return fmt.Errorf("rules: at least one category is required")
	}
	if r.TargetScore <= 0 {
		return fmt.Errorf("rules: target_score must be positive")
	}
	if r.MaxRounds <= 0 {
		return fmt.Errorf("rules: max_rounds must be positive")
	}
	if r.GraceSeconds <= 0 || r.VotingSeconds <= 0 {
		return fmt.Errorf("rules: timer durations must be positive")
	}
	return nil
}

// CountdownDuration is the advisory pre-round countdown.
func (r Rules) CountdownDuration() time.Duration {
	return time.Duration(r.CountdownSeconds) * time.Second
}

// GraceDuration is the window after the first finisher before the round
// force-closes.
func (r Rules) GraceDuration() time.Duration {
	return time.Duration(r.GraceSeconds) * time.Second
}

// VotingDuration is the voting-phase timeout.
func (r Rules) VotingDuration() time.Duration {
	return time.Duration(r.VotingSeconds) * time.Second
}

// TieValid reports the validity-tie policy (default: ties favor valid).
func (r Rules) TieValid() bool {
	return r.TieIsValid == nil || *r.TieIsValid
}
