package rules

import (
	"fmt"

	"github.com/nao1215/profilescan/internal/model"
)

// ratioThreshold is the following/followers ratio above which the account
// is flagged.
const ratioThreshold = 10.0

// RatioDetector flags accounts following far more profiles than follow them
// back, the shape of mass-follow spam.
type RatioDetector struct{}

// NewRatioDetector creates a RatioDetector.
func NewRatioDetector() *RatioDetector {
	return &RatioDetector{}
}

// Name returns the check identifier.
func (d *RatioDetector) Name() string {
	return string(model.FlagUnbalancedRatio)
}

// Detect computes the following/followers ratio. Accounts with zero
// followers have no ratio and never trigger.
func (d *RatioDetector) Detect(record *model.ProfileRecord) *model.RedFlag {
	if record.Followers <= 0 {
		return nil
	}

	ratio := float64(record.Following) / float64(record.Followers)
	if ratio <= ratioThreshold {
		return nil
	}

	flag := model.NewRedFlag(model.FlagUnbalancedRatio, fmt.Sprintf(
		"Following %d but only %d followers (ratio: %.1f)",
		record.Following, record.Followers, ratio))
	return &flag
}

// Ensure RatioDetector implements Detector.
var _ Detector = (*RatioDetector)(nil)
