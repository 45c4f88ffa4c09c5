package model

import (
	"encoding/json"
	"fmt"
)

// MaxRiskScore is the ceiling of the aggregated risk score. Individual flag
// impacts may sum past it; the reported total never does.
const MaxRiskScore = 10

// RiskScore sums the score impact of every flag and clamps the result to
// [0, MaxRiskScore].
func RiskScore(flags []RedFlag) int {
	score := 0
	for _, flag := range flags {
		score += flag.ScoreImpact
	}
	if score > MaxRiskScore {
		return MaxRiskScore
	}
	if score < 0 {
		return 0
	}
	return score
}

// RiskLevel buckets a risk score into one of five labels.
type RiskLevel int

const (
	// RiskLevelMinimal covers scores 0-1: nothing noteworthy.
	RiskLevelMinimal RiskLevel = iota

	// RiskLevelLow covers scores 2-3: isolated weak signals.
	RiskLevelLow

	// RiskLevelMedium covers scores 4-5: multiple signals worth a closer look.
	RiskLevelMedium

	// RiskLevelHigh covers scores 6-7: probable scam or manipulation pattern.
	RiskLevelHigh

	// RiskLevelCritical covers scores 8-10: strong combined evidence.
	RiskLevelCritical
)

// RiskLevelFromScore maps a clamped score to its level. Thresholds are
// checked in descending order so each score lands in exactly one bucket.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 8:
		return RiskLevelCritical
	case score >= 6:
		return RiskLevelHigh
	case score >= 4:
		return RiskLevelMedium
	case score >= 2:
		return RiskLevelLow
	default:
		return RiskLevelMinimal
	}
}

// String returns the uppercase label of the level, as shown in reports.
func (l RiskLevel) String() string {
	switch l {
	case RiskLevelCritical:
		return "CRITICAL"
	case RiskLevelHigh:
		return "HIGH"
	case RiskLevelMedium:
		return "MEDIUM"
	case RiskLevelLow:
		return "LOW"
	case RiskLevelMinimal:
		return "MINIMAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the level as its uppercase label.
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level from its uppercase label.
func (l *RiskLevel) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseRiskLevel(label)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseRiskLevel converts an uppercase level label back to its enum value.
func ParseRiskLevel(label string) (RiskLevel, error) {
	switch label {
	case "MINIMAL":
		return RiskLevelMinimal, nil
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevelMinimal, fmt.Errorf("unknown risk level %q", label)
	}
}
