package rules

import (
	"fmt"

	"github.com/nao1215/profilescan/internal/model"
)

// nameChangeThreshold is the number of observed username changes at which
// an account counts as unstable.
const nameChangeThreshold = 3

// IdentityDetector flags accounts that keep shedding usernames. Frequent
// renames are a common way to outrun blocklists and bad reputation.
type IdentityDetector struct{}

// NewIdentityDetector creates an IdentityDetector.
func NewIdentityDetector() *IdentityDetector {
	return &IdentityDetector{}
}

// Name returns the check identifier.
func (d *IdentityDetector) Name() string {
	return string(model.FlagIdentityInstability)
}

// Detect checks the username change counter.
func (d *IdentityDetector) Detect(record *model.ProfileRecord) *model.RedFlag {
	if record.NameChanges < nameChangeThreshold {
		return nil
	}

	last := record.LastNameChange
	if last == "" {
		last = "N/A"
	}
	flag := model.NewRedFlag(model.FlagIdentityInstability, fmt.Sprintf(
		"%d username changes, last: %s", record.NameChanges, last))
	return &flag
}

// Ensure IdentityDetector implements Detector.
var _ Detector = (*IdentityDetector)(nil)
