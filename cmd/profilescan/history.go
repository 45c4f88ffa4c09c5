package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/profilescan/internal/config"
	"github.com/nao1215/profilescan/internal/database"
	"github.com/nao1215/profilescan/internal/model"
	"github.com/spf13/cobra"
)

// Constants for risk direction and summary messages.
const (
	riskDirectionWorsened  = "worsened"
	riskDirectionImproved  = "improved"
	riskDirectionUnchanged = "unchanged"
	noFlagsMessage         = "No flags"
)

// NewHistoryCmd creates the history command.
// This command inspects analysis results stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [subject]",
		Short: "Inspect stored analysis history for a subject",
		Long: `History lists and compares stored analysis results for a subject.

Analyses are saved automatically by 'profilescan analyze' unless --no-save
is given. This command retrieves them and shows:
- The analysis history of a subject with scores and flag counts
- Differences between two analyses (new, resolved, unchanged flags)
- Other subjects promoting the same channels

Comparison requires at least two stored analyses for the subject.

Examples:
  # List analysis history for a subject
  profilescan history @example

  # Compare the latest two analyses
  profilescan history --compare @example

  # Compare with a specific historical analysis by ID
  profilescan history --with-id 5 @example

  # Compare with the first analysis after a date
  profilescan history --since "2026-01-01" @example

  # Show subjects promoting the same channels
  profilescan history --shared @example

  # Output comparison in JSON format
  profilescan history --compare --json @example

  # List all analyzed subjects in the database
  profilescan history --list-subjects`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// Subject listing flags
	cmd.Flags().BoolP("list-subjects", "L", false,
		"List all analyzed subjects in the database")
	cmd.Flags().Bool("shared", false,
		"List subjects promoting the same channels as the specified subject")

	// Comparison flags
	cmd.Flags().BoolP("compare", "C", false,
		"Compare the latest two analyses for the specified subject")
	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare with a specific analysis by ID (list history to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first analysis after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-subjects flag first (requires database but no subject)
	listSubjects, err := cmd.Flags().GetBool("list-subjects")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-subjects)
	// This prevents database lock issues when validation fails
	var subject string
	if !listSubjects {
		// Require a subject for other operations
		if len(args) == 0 {
			return errors.New("subject is required (use --list-subjects to see analyzed subjects)")
		}
		subject = args[0]
	}

	// Open database
	db, err := database.Open(historyDatabaseDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --list-subjects flag
	if listSubjects {
		return listAnalyzedSubjects(ctx, db)
	}

	// Handle --shared flag
	shared, err := cmd.Flags().GetBool("shared")
	if err != nil {
		return err
	}
	if shared {
		return listSharedChannelSubjects(ctx, db, subject)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Get comparison target flags
	compare, err := cmd.Flags().GetBool("compare")
	if err != nil {
		return err
	}
	withID, err := cmd.Flags().GetInt64("with-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	// Perform comparison when any comparison flag is set
	if compare || withID > 0 || sinceDate != "" {
		return runComparison(ctx, db, subject, withID, sinceDate, jsonOutput)
	}

	// Default: list analysis history for the subject
	return listAnalysisHistory(ctx, db, subject)
}

// historyDatabaseDir resolves the history database directory. A configuration
// file found through the usual search order may relocate it; otherwise the
// XDG data directory is used, matching where analyze saves by default.
func historyDatabaseDir() string {
	if path := config.FindConfigFile(""); path != "" {
		if cf, err := config.LoadConfigFile(path); err == nil && cf.Database.Directory != "" {
			return cf.Database.Directory
		}
	}
	return config.XDGDataDir()
}

// listAnalyzedSubjects lists all subjects that have analysis records in the database.
func listAnalyzedSubjects(ctx context.Context, db *database.HistoryDB) error {
	subjects, err := db.ListSubjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subjects: %w", err)
	}

	if len(subjects) == 0 {
		fmt.Println("No analyzed subjects found in the database.")
		fmt.Println("\nUse 'profilescan analyze <profile-file>' to analyze a profile.")
		return nil
	}

	fmt.Printf("Analyzed subjects (%d):\n\n", len(subjects))
	for _, subject := range subjects {
		fmt.Printf("  • %s\n", subject)
	}
	fmt.Println("\nUse 'profilescan history <subject>' to see analysis history for a subject.")

	return nil
}

// listAnalysisHistory lists all analysis records for a specific subject.
func listAnalysisHistory(ctx context.Context, db *database.HistoryDB, subject string) error {
	analyses, err := db.GetAnalysisHistoryWithMetadata(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to get analysis history: %w", err)
	}

	if len(analyses) == 0 {
		fmt.Printf("No analysis history found for %s\n", subject)
		fmt.Println("\nUse 'profilescan analyze' to analyze this subject.")
		return nil
	}

	fmt.Printf("Analysis history for %s (%d analyses):\n\n", subject, len(analyses))
	fmt.Printf("  %-6s  %-20s  %-13s  %-5s  %-8s  %s\n", "ID", "Date", "Mode", "Score", "Level", "Flags")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, meta := range analyses {
		fmt.Printf("  %-6d  %-20s  %-13s  %-5d  %-8s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Mode,
			meta.Score,
			meta.Level,
			formatSeveritySummary(meta.SeveritySummary),
		)
	}

	fmt.Println("\nUse 'profilescan history --compare <subject>' to compare the latest two analyses.")
	fmt.Println("Use 'profilescan history --with-id <id> <subject>' to compare with a specific analysis.")

	return nil
}

// formatSeveritySummary formats the severity summary map into a human-readable string.
func formatSeveritySummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if v := summary["high"]; v > 0 {
		parts = append(parts, fmt.Sprintf("H:%d", v))
	}
	if v := summary["medium"]; v > 0 {
		parts = append(parts, fmt.Sprintf("M:%d", v))
	}
	if v := summary["low"]; v > 0 {
		parts = append(parts, fmt.Sprintf("L:%d", v))
	}

	if len(parts) == 0 {
		return noFlagsMessage
	}
	return strings.Join(parts, " ")
}

// listSharedChannelSubjects lists subjects that promote at least one channel
// in common with the given subject.
func listSharedChannelSubjects(ctx context.Context, db *database.HistoryDB, subject string) error {
	shared, err := db.SubjectsSharingChannels(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to get shared channels: %w", err)
	}

	if len(shared) == 0 {
		fmt.Printf("No subjects share a channel with %s\n", subject)
		return nil
	}

	// Sort subjects for stable output
	others := make([]string, 0, len(shared))
	for other := range shared {
		others = append(others, other)
	}
	sort.Strings(others)

	fmt.Printf("Subjects sharing channels with %s (%d):\n\n", subject, len(shared))
	for _, other := range others {
		fmt.Printf("  • %s: %s\n", other, strings.Join(shared[other], ", "))
	}

	return nil
}

// runComparison performs the actual comparison between analysis reports.
func runComparison(ctx context.Context, db *database.HistoryDB, subject string, withID int64, sinceDate string, jsonOutput bool) error {
	// Get the analysis history
	reports, err := db.GetAnalysisHistory(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to get analysis history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no analysis history found for %s", subject)
	}

	if len(reports) < 2 && withID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 analyses are required for comparison (found %d)", len(reports))
	}

	// Determine which reports to compare
	var currentReport, previousReport *model.AnalysisReport

	// Latest report is always the current one
	currentReport = reports[0]

	if withID > 0 {
		// Find the report with the specified ID
		report, storedSubject, err := db.GetAnalysisByID(ctx, withID)
		if err != nil {
			return fmt.Errorf("failed to get analysis with ID %d: %w", withID, err)
		}
		if report == nil {
			return fmt.Errorf("analysis with ID %d not found", withID)
		}
		// Validate that the analysis ID belongs to the same subject.
		// The stored subject column is checked because anonymized reports
		// carry no username of their own.
		if storedSubject != subject {
			return fmt.Errorf("analysis ID %d belongs to %s, not %s", withID, storedSubject, subject)
		}
		previousReport = report
	} else if sinceDate != "" {
		// Parse the date and find the first (oldest) report at or after the specified date
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Reports are sorted by timestamp DESC (newest first), so iterate in reverse
		// to find the first (oldest) report at or after the date
		for i := len(reports) - 1; i >= 0; i-- {
			r := reports[i]
			if r.Meta.AnalyzedAt.After(parsedDate) || r.Meta.AnalyzedAt.Equal(parsedDate) {
				previousReport = r
				break // Stop at the first (oldest) matching report
			}
		}
		if previousReport == nil {
			return fmt.Errorf("no analyses found since %s", sinceDate)
		}
		// If only one analysis matches and it's the current report, we can't compare
		if previousReport == currentReport {
			return fmt.Errorf("only one analysis found since %s; at least 2 analyses are required for comparison", sinceDate)
		}
	} else {
		// Default: compare with the previous analysis
		previousReport = reports[1]
	}

	// Generate comparison result
	comparison := compareAnalyses(subject, previousReport, currentReport)

	// Output the result
	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two analysis reports.
type ComparisonResult struct {
	// Subject is the analyzed profile's handle.
	Subject string `json:"subject"`

	// Previous contains metadata about the previous analysis.
	Previous AnalysisSummary `json:"previous_analysis"`

	// Current contains metadata about the current analysis.
	Current AnalysisSummary `json:"current_analysis"`

	// NewFlags contains red flags that are new in the current analysis.
	NewFlags []model.RedFlag `json:"new_flags,omitempty"`

	// ResolvedFlags contains red flags that were in the previous analysis
	// but not in the current one.
	ResolvedFlags []model.RedFlag `json:"resolved_flags,omitempty"`

	// UnchangedCount is the number of red flags present in both analyses.
	UnchangedCount int `json:"unchanged_count"`

	// ScoreDelta is the risk score change from previous to current.
	ScoreDelta int `json:"score_delta"`

	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`
}

// AnalysisSummary contains metadata about one analysis for comparison display.
type AnalysisSummary struct {
	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Mode is the privacy mode the analysis ran at.
	Mode string `json:"mode"`

	// Score is the aggregated risk score.
	Score int `json:"score"`

	// Level is the risk level derived from the score.
	Level string `json:"level"`

	// FlagsCount is the number of red flags raised.
	FlagsCount int `json:"flags_count"`
}

// compareAnalyses compares two analysis reports and generates a comparison result.
func compareAnalyses(subject string, previous, current *model.AnalysisReport) *ComparisonResult {
	result := &ComparisonResult{
		Subject:  subject,
		Previous: summarizeAnalysis(previous),
		Current:  summarizeAnalysis(current),
	}

	// Build flag key sets for membership checks. Red flags are diffed by
	// iterating the report slices rather than the sets so that output order
	// follows evaluation order.
	previousFlags := make(map[string]struct{}, len(previous.RedFlags))
	for _, f := range previous.RedFlags {
		previousFlags[flagKey(f)] = struct{}{}
	}
	currentFlags := make(map[string]struct{}, len(current.RedFlags))
	for _, f := range current.RedFlags {
		currentFlags[flagKey(f)] = struct{}{}
	}

	// Find new flags (in current but not in previous)
	for _, f := range current.RedFlags {
		if _, exists := previousFlags[flagKey(f)]; !exists {
			result.NewFlags = append(result.NewFlags, f)
		}
	}

	// Find resolved flags (in previous but not in current)
	for _, f := range previous.RedFlags {
		if _, exists := currentFlags[flagKey(f)]; !exists {
			result.ResolvedFlags = append(result.ResolvedFlags, f)
		} else {
			result.UnchangedCount++
		}
	}

	// The score already weights flags by severity, so the delta alone
	// determines the direction.
	result.ScoreDelta = result.Current.Score - result.Previous.Score
	switch {
	case result.ScoreDelta > 0:
		result.Direction = riskDirectionWorsened
	case result.ScoreDelta < 0:
		result.Direction = riskDirectionImproved
	default:
		result.Direction = riskDirectionUnchanged
	}

	return result
}

// summarizeAnalysis extracts comparison display metadata from a report.
func summarizeAnalysis(report *model.AnalysisReport) AnalysisSummary {
	return AnalysisSummary{
		AnalyzedAt: report.Meta.AnalyzedAt,
		Mode:       report.Meta.Mode.String(),
		Score:      report.RiskAssessment.Score,
		Level:      report.RiskAssessment.Level.String(),
		FlagsCount: report.RiskAssessment.RedFlagsCount,
	}
}

// flagKey generates a unique key for a red flag for comparison purposes.
func flagKey(f model.RedFlag) string {
	return string(f.Type) + "|" + f.Message
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Analysis Comparison: %s\n", result.Subject)
	fmt.Println(strings.Repeat("=", 60))

	// Risk change summary
	fmt.Printf("\nRisk Status: %s\n", formatRiskDirection(result.Direction))

	// Analysis summaries
	fmt.Printf("\nPrevious analysis: %s  (mode: %s, score: %d/%d, level: %s)\n",
		result.Previous.AnalyzedAt.Format("2006-01-02 15:04:05"),
		result.Previous.Mode, result.Previous.Score, model.MaxRiskScore, result.Previous.Level)
	fmt.Printf("Current analysis:  %s  (mode: %s, score: %d/%d, level: %s)\n",
		result.Current.AnalyzedAt.Format("2006-01-02 15:04:05"),
		result.Current.Mode, result.Current.Score, model.MaxRiskScore, result.Current.Level)

	fmt.Printf("\nScore change: %s\n", formatDelta(result.ScoreDelta))

	// New flags
	if len(result.NewFlags) > 0 {
		fmt.Printf("\nNew Red Flags (%d):\n", len(result.NewFlags))
		for _, f := range result.NewFlags {
			fmt.Printf("  [+] [%s] %s\n", strings.ToUpper(f.Severity.String()), f.Message)
		}
	}

	// Resolved flags
	if len(result.ResolvedFlags) > 0 {
		fmt.Printf("\nResolved Red Flags (%d):\n", len(result.ResolvedFlags))
		for _, f := range result.ResolvedFlags {
			fmt.Printf("  [-] [%s] %s\n", strings.ToUpper(f.Severity.String()), f.Message)
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d red flags\n", result.UnchangedCount)
	}

	return nil
}

// formatRiskDirection formats the risk change direction for display.
func formatRiskDirection(direction string) string {
	switch direction {
	case riskDirectionImproved:
		return "IMPROVED (risk decreased)"
	case riskDirectionWorsened:
		return "WORSENED (risk increased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
