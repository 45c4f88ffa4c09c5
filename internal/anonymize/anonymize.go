package anonymize

import (
	"regexp"

	"github.com/nao1215/profilescan/internal/model"
)

// Placeholders written into anonymized profile views. They are part of the
// report format: downstream tooling greps for them.
const (
	// RedactedUsername replaces the handle in discovery mode.
	RedactedUsername = "@[REDACTED]"

	// AnonymizedDisplayName replaces the display name in discovery mode.
	AnonymizedDisplayName = "[ANONYMIZED]"

	// UserPlaceholder replaces @-handles inside bios in discovery mode.
	UserPlaceholder = "@[USER]"

	// ChannelPlaceholder replaces t.me channel links inside bios in
	// discovery mode.
	ChannelPlaceholder = "t.me/[CHANNEL]"

	// maskToken hides the middle of a username in investigation mode.
	maskToken = "***"
)

// minMaskLength is the username length, in characters, above which
// investigation mode masks the middle. Shorter handles pass through
// unchanged: keeping two plus two characters of a four-character handle
// would hide nothing.
const minMaskLength = 4

var (
	// handlePattern matches @-handles inside free text.
	handlePattern = regexp.MustCompile(`@\w+`)

	// channelPattern matches t.me channel links inside free text.
	channelPattern = regexp.MustCompile(`t\.me/\w+`)
)

// Apply returns the profile view for the given mode. The result is always a
// clone; the input record is never touched.
//
//   - discovery: handle and display name become placeholders, bio handles
//     and channel links are scrubbed
//   - investigation: the handle keeps only its first and last two characters
//   - expert: the record passes through complete
func Apply(mode model.Mode, record *model.ProfileRecord) *model.ProfileRecord {
	view := record.Clone()
	if view == nil {
		return nil
	}

	switch mode {
	case model.ModeDiscovery:
		view.Username = RedactedUsername
		view.DisplayName = AnonymizedDisplayName
		view.Bio = ScrubBio(view.Bio)
	case model.ModeInvestigation:
		view.Username = MaskUsername(view.Username)
	case model.ModeExpert:
		// Full data; the report carries the expert disclaimer instead.
	}
	return view
}

// ScrubBio replaces identifying references inside a bio: @-handles become
// UserPlaceholder, then t.me channel links become ChannelPlaceholder. The
// pass order is fixed and part of the report format.
func ScrubBio(bio string) string {
	scrubbed := handlePattern.ReplaceAllString(bio, UserPlaceholder)
	return channelPattern.ReplaceAllString(scrubbed, ChannelPlaceholder)
}

// MaskUsername hides the middle of a handle, keeping the first and last two
// characters. Handles of minMaskLength characters or fewer pass through
// unchanged. Characters are counted as runes so multibyte handles mask
// cleanly.
func MaskUsername(username string) string {
	runes := []rune(username)
	if len(runes) <= minMaskLength {
		return username
	}
	return string(runes[:2]) + maskToken + string(runes[len(runes)-2:])
}
