package model

import (
	"encoding/json"
	"fmt"
)

// Severity represents the weight class of a red flag raised against a profile.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// the canonical lowercase word, which is also the interchange form stored in
// report JSON, so saved reports stay readable without a decoding table.
type Severity int

const (
	// SeverityLow indicates weak signals that mean little on their own.
	// Example: a lopsided following/followers ratio.
	SeverityLow Severity = iota

	// SeverityMedium indicates patterns that commonly accompany scam activity.
	// Examples: Telegram funnels in the bio, bursts of username changes.
	SeverityMedium

	// SeverityHigh indicates strong indicators of deceptive or coordinated behavior.
	// Examples: declared/technical location mismatch, shared channel networks.
	SeverityHigh
)

// String returns the canonical lowercase word for the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its lowercase word.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its lowercase word.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseSeverity(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a lowercase severity word back to its enum value.
func ParseSeverity(label string) (Severity, error) {
	switch label {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	default:
		return SeverityLow, fmt.Errorf("unknown severity %q", label)
	}
}
