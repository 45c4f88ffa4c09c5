package model

import (
	"encoding/json"
	"fmt"
)

// Mode controls how much identifying profile data a report exposes.
//
// Design decision: modes form a closed enum. An unknown label is a caller
// error surfaced by ParseMode rather than being mapped to a fallback, so a
// typo fails loudly instead of silently producing a report at the wrong
// privacy tier.
type Mode int

const (
	// ModeDiscovery fully anonymizes the profile view: username and display
	// name become placeholders and bio handles are scrubbed. The default.
	ModeDiscovery Mode = iota

	// ModeInvestigation keeps real data but masks the username.
	ModeInvestigation

	// ModeExpert exposes the full record and attaches a responsibility
	// disclaimer to the report.
	ModeExpert
)

// String returns the lowercase label of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDiscovery:
		return "discovery"
	case ModeInvestigation:
		return "investigation"
	case ModeExpert:
		return "expert"
	default:
		return "unknown"
	}
}

// ParseMode converts a lowercase mode label to its enum value.
func ParseMode(label string) (Mode, error) {
	switch label {
	case "discovery":
		return ModeDiscovery, nil
	case "investigation":
		return ModeInvestigation, nil
	case "expert":
		return ModeExpert, nil
	default:
		return ModeDiscovery, fmt.Errorf("unknown mode %q (valid: discovery, investigation, expert)", label)
	}
}

// MarshalJSON encodes the mode as its lowercase label.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode from its lowercase label.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseMode(label)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
