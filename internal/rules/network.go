package rules

import (
	"fmt"

	"github.com/nao1215/profilescan/internal/model"
)

// sharedChannelThreshold is the number of channels shared with suspicious
// accounts at which coordination is assumed.
const sharedChannelThreshold = 2

// NetworkDetector flags profiles whose channel memberships overlap with
// accounts already under suspicion. One shared channel can be chance; two
// or more look like a network.
type NetworkDetector struct{}

// NewNetworkDetector creates a NetworkDetector.
func NewNetworkDetector() *NetworkDetector {
	return &NetworkDetector{}
}

// Name returns the check identifier.
func (d *NetworkDetector) Name() string {
	return string(model.FlagCoordinatedNetwork)
}

// Detect counts the shared channels.
func (d *NetworkDetector) Detect(record *model.ProfileRecord) *model.RedFlag {
	if len(record.SharedChannels) < sharedChannelThreshold {
		return nil
	}

	flag := model.NewRedFlag(model.FlagCoordinatedNetwork, fmt.Sprintf(
		"Shares %d channels with other suspicious accounts", len(record.SharedChannels)))
	return &flag
}

// Ensure NetworkDetector implements Detector.
var _ Detector = (*NetworkDetector)(nil)
