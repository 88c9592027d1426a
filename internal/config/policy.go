// Package config provides loading of the validation policy file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the tunable validation thresholds. The zero value is never
// used; DefaultPolicy supplies the shipped numbers and a yaml file may
// override individual fields.
type Policy struct {
	// Word frequency: threshold per word is max(FreqFloor, tokens/FreqDivisor).
	FreqFloor   int `yaml:"freq_floor"`
	FreqDivisor int `yaml:"freq_divisor"`
	// MinTokenLen: tokens at or below this length are ignored by the
	// frequency check.
	MinTokenLen int `yaml:"min_token_len"`

	SentenceSimilarity float64 `yaml:"sentence_similarity"`
	SentenceMinLen     int     `yaml:"sentence_min_len"`

	ParagraphSimilarity float64 `yaml:"paragraph_similarity"`
	ParagraphMinLen     int     `yaml:"paragraph_min_len"`

	// Quality flagging: score below FlagScoreBelow or more than
	// FlagViolationsAbove rule violations forces admin review.
	FlagScoreBelow      int `yaml:"flag_score_below"`
	FlagViolationsAbove int `yaml:"flag_violations_above"`

	// WordCountSlack is the fraction below target the oracle is instructed
	// to treat as failing (0.10 = more than 10% short fails).
	WordCountSlack float64 `yaml:"word_count_slack"`
}

// DefaultPolicy returns the shipped validation thresholds.
func DefaultPolicy() Policy {
	return Policy{
		FreqFloor:           3,
		FreqDivisor:         20,
		MinTokenLen:         2,
		SentenceSimilarity:  0.85,
		SentenceMinLen:      10,
		ParagraphSimilarity: 0.70,
		ParagraphMinLen:     50,
		FlagScoreBelow:      30,
		FlagViolationsAbove: 2,
		WordCountSlack:      0.10,
	}
}

// LoadPolicy returns the default policy, overridden by the yaml file at
// path when path is non-empty.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	// #nosec G304 -- operator-supplied config path
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("op=config.LoadPolicy: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Policy{}, fmt.Errorf("op=config.LoadPolicy: parse: %w", err)
	}
	if err := p.validate(); err != nil {
		return Policy{}, fmt.Errorf("op=config.LoadPolicy: %w", err)
	}
	return p, nil
}

func (p Policy) validate() error {
	if p.FreqFloor < 1 || p.FreqDivisor < 1 {
		return fmt.Errorf("frequency thresholds must be positive")
	}
	if p.SentenceSimilarity <= 0 || p.SentenceSimilarity > 1 {
		return fmt.Errorf("sentence_similarity must be in (0,1]")
	}
	if p.ParagraphSimilarity <= 0 || p.ParagraphSimilarity > 1 {
		return fmt.Errorf("paragraph_similarity must be in (0,1]")
	}
	if p.WordCountSlack < 0 || p.WordCountSlack >= 1 {
		return fmt.Errorf("word_count_slack must be in [0,1)")
	}
	return nil
}
