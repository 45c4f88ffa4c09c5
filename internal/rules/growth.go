package rules

import (
	"fmt"

	"github.com/nao1215/profilescan/internal/model"
)

// recentYears are the join-date markers that count an account as new.
// They reflect the campaign window the battery targets.
var recentYears = []string{"2023", "2024"}

// growthFollowerThreshold is the follower count a recent account must
// exceed before its growth is considered suspicious.
const growthFollowerThreshold = 1000

// GrowthDetector flags recently created accounts with follower counts that
// organic growth rarely reaches in that time.
type GrowthDetector struct{}

// NewGrowthDetector creates a GrowthDetector.
func NewGrowthDetector() *GrowthDetector {
	return &GrowthDetector{}
}

// Name returns the check identifier.
func (d *GrowthDetector) Name() string {
	return string(model.FlagSuspiciousGrowth)
}

// Detect checks the join date against the follower count.
func (d *GrowthDetector) Detect(record *model.ProfileRecord) *model.RedFlag {
	if record.Followers <= growthFollowerThreshold {
		return nil
	}
	if !containsAny(record.JoinDate, recentYears) {
		return nil
	}

	flag := model.NewRedFlag(model.FlagSuspiciousGrowth, fmt.Sprintf(
		"Recent account (%s) with %d followers", record.JoinDate, record.Followers))
	return &flag
}

// Ensure GrowthDetector implements Detector.
var _ Detector = (*GrowthDetector)(nil)
