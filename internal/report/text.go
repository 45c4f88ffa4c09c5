package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/profilescan/internal/model"
)

// reportTimeLayout renders analysis timestamps in the text report.
// AnalyzedAt is always UTC, so the zone abbreviation reads UTC.
const reportTimeLayout = "2006-01-02 15:04 MST"

// bioDisplayLimit caps the bio excerpt in rendered reports.
const bioDisplayLimit = 100

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display with emoji section markers
// and clear borders.
//
// Design decision: We use plain text rather than ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the report in human-readable format.
func (w *TextWriter) Write(report *model.AnalysisReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeMeta(&sb, report)
	w.writeRisk(&sb, report)
	w.writeProfile(&sb, report)
	w.writeFlags(&sb, report)
	w.writeRecommendations(&sb, report)
	w.writeDisclaimer(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report title between borders.
func (w *TextWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("PROFILESCAN ANALYSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
}

// writeMeta writes the analysis mode and date.
func (w *TextWriter) writeMeta(sb *strings.Builder, report *model.AnalysisReport) {
	sb.WriteString(fmt.Sprintf("\n📊 MODE: %s\n", strings.ToUpper(report.Meta.Mode.String())))
	sb.WriteString(fmt.Sprintf("📅 Date: %s\n", report.Meta.AnalyzedAt.Format(reportTimeLayout)))
}

// writeRisk writes the aggregated score and level.
func (w *TextWriter) writeRisk(sb *strings.Builder, report *model.AnalysisReport) {
	risk := report.RiskAssessment
	sb.WriteString(fmt.Sprintf("\n⚠️  RISK SCORE: %d/%d - %s\n", risk.Score, model.MaxRiskScore, risk.Level))
	sb.WriteString(fmt.Sprintf("🔴 Red flags detected: %d\n", risk.RedFlagsCount))
}

// writeProfile writes the mode-filtered profile view.
// Discovery reports carry no profile section at all.
func (w *TextWriter) writeProfile(sb *strings.Builder, report *model.AnalysisReport) {
	if report.Meta.Mode == model.ModeDiscovery || report.Profile == nil {
		return
	}

	profile := report.Profile
	sb.WriteString("\n👤 PROFILE:\n")
	sb.WriteString(fmt.Sprintf("   Name: %s\n", orNA(profile.DisplayName)))
	sb.WriteString(fmt.Sprintf("   Handle: %s\n", orNA(profile.Username)))
	sb.WriteString(fmt.Sprintf("   Bio: %s...\n", truncateRunes(orNA(profile.Bio), bioDisplayLimit)))
	sb.WriteString(fmt.Sprintf("   Location: %s\n", orNA(profile.DeclaredLocation)))
	sb.WriteString(fmt.Sprintf("   Technical: %s\n", orNA(profile.TechnicalLocation)))
}

// writeFlags writes the numbered red flag list. Clean reports skip the
// section entirely.
func (w *TextWriter) writeFlags(sb *strings.Builder, report *model.AnalysisReport) {
	if !report.HasFlags() {
		return
	}

	sb.WriteString("\n🚨 RED FLAGS:\n")
	for i, flag := range report.RedFlags {
		sb.WriteString(fmt.Sprintf("   %d. [%s] %s\n", i+1, strings.ToUpper(flag.Severity.String()), flag.Message))
	}
}

// writeRecommendations writes the advice bullet list.
func (w *TextWriter) writeRecommendations(sb *strings.Builder, report *model.AnalysisReport) {
	sb.WriteString("\n💡 RECOMMENDATIONS:\n")
	for _, rec := range report.Recommendations {
		sb.WriteString(fmt.Sprintf("   • %s\n", rec))
	}
}

// writeDisclaimer writes the expert warning block. Other modes carry their
// disclaimer only in the structured output.
func (w *TextWriter) writeDisclaimer(sb *strings.Builder, report *model.AnalysisReport) {
	if report.Meta.Mode != model.ModeExpert {
		return
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("EXPERT MODE DISCLAIMER:\n")
	sb.WriteString(report.Meta.Disclaimer)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
}

// writeFooter writes the closing borders.
func (w *TextWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("End of report - Use responsibly\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")
}

// orNA substitutes N/A for empty profile fields.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// truncateRunes cuts s to at most limit runes. Bios may contain emoji, so
// byte slicing would split characters.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
