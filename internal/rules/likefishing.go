package rules

import "github.com/nao1215/profilescan/internal/model"

// LikeFishingDetector flags accounts that collection observed mass-liking
// posts to bait targets into DM conversations. The observation itself is
// made upstream; this check only surfaces it.
type LikeFishingDetector struct{}

// NewLikeFishingDetector creates a LikeFishingDetector.
func NewLikeFishingDetector() *LikeFishingDetector {
	return &LikeFishingDetector{}
}

// Name returns the check identifier.
func (d *LikeFishingDetector) Name() string {
	return string(model.FlagLikeFishing)
}

// Detect surfaces the like-fishing observation as a flag.
func (d *LikeFishingDetector) Detect(record *model.ProfileRecord) *model.RedFlag {
	if !record.LikeFishing {
		return nil
	}

	flag := model.NewRedFlag(model.FlagLikeFishing, "Uses likes to attract attention before DM scams")
	return &flag
}

// Ensure LikeFishingDetector implements Detector.
var _ Detector = (*LikeFishingDetector)(nil)
