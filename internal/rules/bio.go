package rules

import (
	"fmt"
	"strings"

	"github.com/nao1215/profilescan/internal/model"
)

// scamKeywords is the built-in scam vocabulary searched in bios: payment
// handles, DM funnels, and crypto hype terms collected from observed
// campaigns.
var scamKeywords = []string{
	"blessed", "blessing", "cashapp", "paypal", "apple pay",
	"send me", "dm me", "instant money", "get paid",
	"nfa", "not financial advice", "alpha", "signal",
	"pump", "moon", "100x", "financial freedom",
}

// bioEscalationCount is the matched-keyword count at which the flag's score
// impact rises from 1 to 2.
const bioEscalationCount = 3

// BioDetector flags bios that use known scam vocabulary. A single hit is a
// weak signal; several together raise the impact.
type BioDetector struct {
	keywords []string
}

// NewBioDetector creates a BioDetector with the built-in vocabulary plus
// any extensions.
func NewBioDetector(extra []string) *BioDetector {
	return &BioDetector{keywords: appendLowered(scamKeywords, extra)}
}

// Name returns the check identifier.
func (d *BioDetector) Name() string {
	return string(model.FlagSuspiciousBio)
}

// Detect searches the bio for scam vocabulary. The message lists every
// matched keyword in vocabulary order.
func (d *BioDetector) Detect(record *model.ProfileRecord) *model.RedFlag {
	matched := matchAll(strings.ToLower(record.Bio), d.keywords)
	if len(matched) == 0 {
		return nil
	}

	flag := model.NewRedFlag(model.FlagSuspiciousBio, fmt.Sprintf(
		"Bio contains suspicious keywords: %s", strings.Join(matched, ", ")))
	if len(matched) >= bioEscalationCount {
		flag.ScoreImpact = 2
	}
	return &flag
}

// Ensure BioDetector implements Detector.
var _ Detector = (*BioDetector)(nil)
