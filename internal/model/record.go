package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is returned when a profile record carries values outside
// their domain, such as negative counters. Wrapped errors carry the field name.
var ErrInvalidRecord = errors.New("invalid profile record")

// ProfileRecord is the flat, pre-collected snapshot of a social-media profile
// that the evaluator consumes. No live platform access happens here; the
// record is assembled upstream by collection tooling.
//
// Every field is optional. Collection rarely sees a complete profile, and a
// missing value simply means the checks that need it stay silent. JSON and
// YAML keys follow the interchange format used by the collection side.
type ProfileRecord struct {
	// Username is the account handle, usually with a leading "@".
	Username string `json:"username,omitempty" yaml:"username,omitempty"`

	// DisplayName is the free-form display name.
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`

	// Bio is the profile description text.
	Bio string `json:"bio,omitempty" yaml:"bio,omitempty"`

	// DeclaredLocation is the location the profile claims.
	DeclaredLocation string `json:"declared_location,omitempty" yaml:"declared_location,omitempty"`

	// TechnicalLocation is the location inferred from technical evidence
	// such as posting times or client metadata.
	TechnicalLocation string `json:"technical_location,omitempty" yaml:"technical_location,omitempty"`

	// Device is the posting client or device string, when known.
	Device string `json:"device,omitempty" yaml:"device,omitempty"`

	// JoinDate is the account creation date as reported, free-form.
	JoinDate string `json:"join_date,omitempty" yaml:"join_date,omitempty"`

	// NameChanges counts observed username changes.
	NameChanges int `json:"name_changes,omitempty" yaml:"name_changes,omitempty"`

	// LastNameChange is when the most recent username change happened.
	LastNameChange string `json:"last_name_change,omitempty" yaml:"last_name_change,omitempty"`

	// Following is the number of accounts this profile follows.
	Following int `json:"following,omitempty" yaml:"following,omitempty"`

	// Followers is the number of accounts following this profile.
	Followers int `json:"followers,omitempty" yaml:"followers,omitempty"`

	// SharedChannels lists channels this profile shares with accounts
	// already under suspicion.
	SharedChannels []string `json:"shared_channels,omitempty" yaml:"shared_channels,omitempty"`

	// LikeFishing reports whether collection observed like-baiting:
	// mass-liking posts to lure targets into DM conversations.
	LikeFishing bool `json:"like_fishing,omitempty" yaml:"like_fishing,omitempty"`
}

// Validate checks numeric fields for values outside their domain.
// Missing fields are always fine; negative counters are not.
func (r *ProfileRecord) Validate() error {
	if r.NameChanges < 0 {
		return fmt.Errorf("%w: name_changes is negative (%d)", ErrInvalidRecord, r.NameChanges)
	}
	if r.Following < 0 {
		return fmt.Errorf("%w: following is negative (%d)", ErrInvalidRecord, r.Following)
	}
	if r.Followers < 0 {
		return fmt.Errorf("%w: followers is negative (%d)", ErrInvalidRecord, r.Followers)
	}
	return nil
}

// Clone returns a deep copy of the record. Report views are built from
// clones so the caller's record is never aliased or mutated.
func (r *ProfileRecord) Clone() *ProfileRecord {
	if r == nil {
		return nil
	}
	clone := *r
	if r.SharedChannels != nil {
		clone.SharedChannels = make([]string, len(r.SharedChannels))
		copy(clone.SharedChannels, r.SharedChannels)
	}
	return &clone
}
