package model

// FlagType is the stable identifier of one profile check. The value doubles
// as the detector name and as the "type" field of report JSON.
type FlagType string

// The full battery of checks, in evaluation order.
const (
	// FlagGeoInconsistency fires when the declared location and the
	// technically inferred location sit on opposite ends of a known
	// scam corridor.
	FlagGeoInconsistency FlagType = "geo_inconsistency"

	// FlagSuspiciousGrowth fires for recently created accounts with an
	// implausibly large follower count.
	FlagSuspiciousGrowth FlagType = "suspicious_growth"

	// FlagIdentityInstability fires when the account keeps changing its
	// username.
	FlagIdentityInstability FlagType = "identity_instability"

	// FlagTelegramPromotion fires when the bio funnels readers into
	// Telegram.
	FlagTelegramPromotion FlagType = "telegram_promotion"

	// FlagSuspiciousBio fires when the bio contains known scam vocabulary.
	FlagSuspiciousBio FlagType = "suspicious_bio"

	// FlagUnbalancedRatio fires for accounts following far more profiles
	// than follow them back.
	FlagUnbalancedRatio FlagType = "unbalanced_ratio"

	// FlagCoordinatedNetwork fires when the profile shares channels with
	// accounts already under suspicion.
	FlagCoordinatedNetwork FlagType = "coordinated_network"

	// FlagLikeFishing fires when collection observed like-baiting behavior.
	FlagLikeFishing FlagType = "like_fishing"
)

// RedFlag is a single triggered check together with its contribution to the
// aggregated risk score.
type RedFlag struct {
	// Type identifies the check that raised the flag.
	Type FlagType `json:"type"`

	// Severity is the weight class of the flag.
	Severity Severity `json:"severity"`

	// Message is the human-readable explanation, including the concrete
	// values that triggered the check.
	Message string `json:"message"`

	// ScoreImpact is the number of points this flag adds to the risk score.
	ScoreImpact int `json:"score_impact"`
}

// FlagInfo contains the static metadata of a flag type: its severity, its
// base score impact, and the advice line recommended when the flag is present.
type FlagInfo struct {
	Severity    Severity
	ScoreImpact int
	Advice      string
}

// flagInfoMapping maps flag types to their metadata.
// This centralized mapping ensures consistent scoring across the application.
//
// Design decision: severity and score impact live here rather than inside each
// detector because:
// 1. It keeps the whole scoring table reviewable in one place
// 2. It provides a single source of truth for report rendering
// 3. Detectors stay focused on trigger conditions
var flagInfoMapping = map[FlagType]FlagInfo{
	FlagGeoInconsistency: {
		Severity:    SeverityHigh,
		ScoreImpact: 3,
		Advice:      "🌍 Verify geographical claims before trust",
	},
	FlagSuspiciousGrowth: {
		Severity:    SeverityMedium,
		ScoreImpact: 2,
	},
	FlagIdentityInstability: {
		Severity:    SeverityMedium,
		ScoreImpact: 2,
	},
	FlagTelegramPromotion: {
		Severity:    SeverityMedium,
		ScoreImpact: 2,
		Advice:      "📢 Be cautious of Telegram groups promising quick gains",
	},
	FlagSuspiciousBio: {
		Severity:    SeverityMedium,
		ScoreImpact: 1, // detectors escalate to 2 when three or more keywords match
	},
	FlagUnbalancedRatio: {
		Severity:    SeverityLow,
		ScoreImpact: 1,
	},
	FlagCoordinatedNetwork: {
		Severity:    SeverityHigh,
		ScoreImpact: 3,
	},
	FlagLikeFishing: {
		Severity:    SeverityMedium,
		ScoreImpact: 2,
		Advice:      "👍 Likes can be bait - check profile before engaging",
	},
}

// NewRedFlag builds a flag of the given type with its mapped severity and
// base score impact.
func NewRedFlag(ftype FlagType, message string) RedFlag {
	info := GetFlagInfo(ftype)
	return RedFlag{
		Type:        ftype,
		Severity:    info.Severity,
		Message:     message,
		ScoreImpact: info.ScoreImpact,
	}
}

// GetFlagInfo returns the static metadata for a flag type.
// Unknown types map to a low-severity, zero-impact entry so that a stored
// report from a newer version degrades instead of failing.
func GetFlagInfo(ftype FlagType) FlagInfo {
	if info, ok := flagInfoMapping[ftype]; ok {
		return info
	}
	return FlagInfo{Severity: SeverityLow}
}

// AdviceFor returns the advice line for a flag type, or the empty string when
// the type carries none.
func AdviceFor(ftype FlagType) string {
	return GetFlagInfo(ftype).Advice
}
