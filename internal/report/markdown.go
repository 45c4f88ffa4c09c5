package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/profilescan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeRisk(md, report)
	w.writeProfile(md, report)
	w.writeFlags(md, report)
	w.writeRecommendations(md, report)
	w.writeDisclaimer(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and analysis metadata.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H1("ProfileScan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Mode", report.Meta.Mode.String()},
			{"Analyzed", report.Meta.AnalyzedAt.Format(reportTimeLayout)},
			{"Tool", report.Meta.Tool + " " + report.Meta.Version},
		},
	})
	md.PlainText("")
}

// writeRisk writes the risk assessment section with an alert matched to
// the level and a severity distribution chart.
func (w *MarkdownWriter) writeRisk(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Risk Assessment")
	md.PlainText("")

	risk := report.RiskAssessment
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Score", strconv.Itoa(risk.Score) + "/" + strconv.Itoa(model.MaxRiskScore)},
			{"Level", risk.Level.String()},
			{"Red Flags", strconv.Itoa(risk.RedFlagsCount)},
		},
	})
	md.PlainText("")

	if report.HasFlags() {
		w.writePieChart(md, report)
	}
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of flag severities.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AnalysisReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Red Flag Severity Distribution"),
		piechart.WithShowData(true),
	)

	counts := report.CountBySeverity()
	for _, severity := range []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityLow} {
		if n := counts[severity.String()]; n > 0 {
			chart.LabelAndIntValue(strings.ToUpper(severity.String()), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matched to the risk level.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AnalysisReport) {
	risk := report.RiskAssessment
	switch risk.Level {
	case model.RiskLevelCritical:
		md.Cautionf(
			"Critical risk profile. Score %d/%d with %d red flag(s). Avoid any interaction.",
			risk.Score, model.MaxRiskScore, risk.RedFlagsCount,
		)
	case model.RiskLevelHigh:
		md.Warningf(
			"High risk profile. Score %d/%d with %d red flag(s).",
			risk.Score, model.MaxRiskScore, risk.RedFlagsCount,
		)
	case model.RiskLevelMedium:
		md.Importantf(
			"Medium risk profile. %d red flag(s) warrant a closer look.",
			risk.RedFlagsCount,
		)
	case model.RiskLevelLow:
		md.Note("Low risk. Minor irregularities detected.")
	default:
		md.Tip("No significant risk patterns detected.")
	}
	md.PlainText("")
}

// writeProfile writes the mode-filtered profile view. Discovery reports
// carry no profile section at all.
func (w *MarkdownWriter) writeProfile(md *markdown.Markdown, report *model.AnalysisReport) {
	if report.Meta.Mode == model.ModeDiscovery || report.Profile == nil {
		return
	}

	profile := report.Profile
	md.H2("Profile")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Name", orNA(profile.DisplayName)},
			{"Handle", "`" + orNA(profile.Username) + "`"},
			{"Bio", truncateRunes(orNA(profile.Bio), bioDisplayLimit)},
			{"Location", orNA(profile.DeclaredLocation)},
			{"Technical", orNA(profile.TechnicalLocation)},
			{"Followers", strconv.Itoa(profile.Followers)},
			{"Following", strconv.Itoa(profile.Following)},
		},
	})
	md.PlainText("")
}

// writeFlags writes all red flags grouped by severity.
func (w *MarkdownWriter) writeFlags(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Red Flags")
	md.PlainText("")

	if !report.HasFlags() {
		md.PlainText("No red flags detected.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityHigh, "### 🔴 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
	}

	for _, sev := range severities {
		flags := flagsBySeverity(report.RedFlags, sev.level)
		if len(flags) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFlagsTable(md, flags)
	}
}

// writeFlagsTable writes a table of flags with per-flag advice details.
func (w *MarkdownWriter) writeFlagsTable(md *markdown.Markdown, flags []model.RedFlag) {
	rows := make([][]string, len(flags))
	for i, flag := range flags {
		rows[i] = []string{
			string(flag.Type),
			flag.Message,
			strconv.Itoa(flag.ScoreImpact),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Type", "Message", "Impact"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, flag := range flags {
		if advice := model.AdviceFor(flag.Type); advice != "" {
			md.Details(string(flag.Type), advice)
		}
	}
	md.PlainText("")
}

// writeRecommendations writes the advice list.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Recommendations")
	md.PlainText("")
	md.BulletList(report.Recommendations...)
	md.PlainText("")
}

// writeDisclaimer writes the disclaimer section. Expert reports render
// every line of the warning block.
func (w *MarkdownWriter) writeDisclaimer(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Disclaimer")
	md.PlainText("")
	for _, line := range strings.Split(report.Meta.Disclaimer, "\n") {
		md.PlainText(line)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [profilescan](https://github.com/nao1215/profilescan)*")
}

// flagsBySeverity filters flags matching the given severity, preserving
// battery order.
func flagsBySeverity(flags []model.RedFlag, severity model.Severity) []model.RedFlag {
	var matched []model.RedFlag
	for _, flag := range flags {
		if flag.Severity == severity {
			matched = append(matched, flag)
		}
	}
	return matched
}
