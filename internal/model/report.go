package model

import "time"

// ToolName is the identifier written into report metadata.
const ToolName = "profilescan"

// AnalysisReport is the complete result of evaluating one profile record at
// a chosen privacy mode.
//
// Design decision: the report embeds the mode-dependent profile view rather
// than the caller's record so that serializing a report can never leak more
// than the mode allows. Anything the report holds is safe to write wherever
// the report itself goes.
type AnalysisReport struct {
	// Meta describes how and when the analysis ran.
	Meta ReportMeta `json:"meta"`

	// RiskAssessment is the aggregated scoring result.
	RiskAssessment RiskAssessment `json:"risk_assessment"`

	// Profile is the mode-dependent view of the analyzed record. In
	// discovery mode identifying fields are replaced with placeholders.
	Profile *ProfileRecord `json:"profile"`

	// RedFlags lists every triggered check in evaluation order.
	RedFlags []RedFlag `json:"red_flags"`

	// Recommendations are the advice lines derived from score and flags.
	Recommendations []string `json:"recommendations"`
}

// ReportMeta describes the analysis run itself.
type ReportMeta struct {
	// Tool is the producing tool identifier.
	Tool string `json:"tool"`

	// Version is the tool version that produced the report.
	Version string `json:"version"`

	// Mode is the privacy tier the report was rendered at.
	Mode Mode `json:"mode"`

	// AnalyzedAt is when the analysis ran, in UTC.
	AnalyzedAt time.Time `json:"analysis_date"`

	// Disclaimer states the handling expectations for this report.
	Disclaimer string `json:"disclaimer"`
}

// RiskAssessment is the aggregated scoring block of a report.
type RiskAssessment struct {
	// Score is the clamped total risk score, 0 to MaxRiskScore.
	Score int `json:"score"`

	// Level is the bucketed label for Score.
	Level RiskLevel `json:"level"`

	// RedFlagsCount is the number of triggered checks.
	RedFlagsCount int `json:"red_flags_count"`
}

// HasFlags reports whether any check triggered.
func (r *AnalysisReport) HasFlags() bool {
	return len(r.RedFlags) > 0
}

// CountBySeverity counts red flags per severity. Keys are the lowercase
// severity words; absent severities are omitted.
func (r *AnalysisReport) CountBySeverity() map[string]int {
	counts := make(map[string]int, 3)
	for _, flag := range r.RedFlags {
		counts[flag.Severity.String()]++
	}
	return counts
}
