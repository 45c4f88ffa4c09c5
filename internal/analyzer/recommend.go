package analyzer

import "github.com/nao1215/profilescan/internal/model"

const (
	// financialWarning and reportWarning are prepended together once the
	// aggregated score reaches warnScoreThreshold.
	financialWarning = "⚠️ Avoid any financial interaction with this account"
	reportWarning    = "🔍 Report if promoting scams or manipulation"

	// allClearAdvice is the single line a report carries when no other
	// recommendation applies.
	allClearAdvice = "✅ Profile appears normal - maintain standard vigilance"
)

// warnScoreThreshold is the score at which the blanket warnings kick in.
const warnScoreThreshold = 6

// advisedFlagOrder fixes the order in which per-flag advice lines appear,
// independent of the flag order in the report.
var advisedFlagOrder = []model.FlagType{
	model.FlagGeoInconsistency,
	model.FlagTelegramPromotion,
	model.FlagLikeFishing,
}

// recommendations derives the advice list from the score and flags. High
// scores prepend the blanket warnings, advised flags contribute their line
// in fixed order, and an empty result collapses to the all-clear line.
// Flags without advice never suppress the all-clear on their own.
func recommendations(score int, flags []model.RedFlag) []string {
	present := make(map[model.FlagType]bool, len(flags))
	for _, flag := range flags {
		present[flag.Type] = true
	}

	recs := make([]string, 0, len(advisedFlagOrder)+2)
	if score >= warnScoreThreshold {
		recs = append(recs, financialWarning, reportWarning)
	}
	for _, ftype := range advisedFlagOrder {
		if present[ftype] {
			recs = append(recs, model.AdviceFor(ftype))
		}
	}
	if len(recs) == 0 {
		recs = append(recs, allClearAdvice)
	}
	return recs
}
