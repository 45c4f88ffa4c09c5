package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/profilescan/internal/analyzer"
	"github.com/nao1215/profilescan/internal/config"
	"github.com/nao1215/profilescan/internal/database"
	"github.com/nao1215/profilescan/internal/log"
	"github.com/nao1215/profilescan/internal/model"
	"github.com/nao1215/profilescan/internal/profile"
	"github.com/nao1215/profilescan/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [profile-file]",
		Short: "Analyze social media profiles for scam patterns",
		Long: `Analyze evaluates profile records against a battery of scam pattern checks.

It reads profile records from JSON or YAML files and checks them for:
- Suspicious bio keywords (crypto giveaways, guaranteed returns)
- Off-platform contact funnels (Telegram channels and handles)
- Geographic mismatches between declared and technical location
- Account age, follower ratio, and engagement anomalies

Reports are tiered by privacy mode:
- discovery: anonymized, no identifying profile data (default)
- investigation: masked username, partial profile data
- expert: full profile data with a handling disclaimer

Examples:
  # Analyze a single profile with the default discovery mode
  profilescan analyze profile.json

  # Analyze multiple profiles concurrently
  profilescan analyze profiles/*.yaml

  # Full detail for a vetted investigation
  profilescan analyze --mode expert profile.json

  # Output JSON report to a file
  profilescan analyze --json -o report.json profile.json

  # Use a custom configuration file
  profilescan analyze --config myconfig.yaml profile.json

Configuration file (.profilescan.yaml) example:
  defaultMode: investigation
  database:
    directory: /var/lib/profilescan
  keywords:
    scam:
      - airdrop
    telegram:
      - t.me/`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Analysis behavior flags
	cmd.Flags().StringP("mode", "m", config.DefaultMode,
		"Privacy mode: discovery, investigation, or expert")
	cmd.Flags().IntP("concurrency", "c", config.DefaultConcurrency,
		"Number of concurrent analyses for multiple profile files")

	// Configuration file
	cmd.Flags().String("config", "",
		"Configuration file path (default: .profilescan.yaml in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().Bool("pretty", false,
		"Indent JSON output (only meaningful with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Skip saving analysis results to the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging. The secure logger masks subject identity
	// and secrets regardless of the report's privacy mode.
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.Mode, err = cmd.Flags().GetString("mode")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.PrettyJSON, err = cmd.Flags().GetBool("pretty")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	// Load settings from the configuration file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		// Flags win: ApplyTo only fills fields still holding built-in defaults.
		cfg.FileConfig.ApplyTo(cfg)
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.FileConfig = &config.File{}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional arguments (profile file paths)
	cfg.ProfileFiles = args

	return cfg, nil
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	mode, err := cfg.ParsedMode()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger.Info("starting analysis",
		"profiles", len(cfg.ProfileFiles),
		"mode", mode.String(),
		"concurrency", cfg.Concurrency,
		"saveToDB", cfg.SaveToDB,
	)

	opts := []analyzer.Option{analyzer.WithVersion(getVersion())}
	if cfg.FileConfig != nil {
		opts = append(opts, analyzer.WithRuleOptions(cfg.FileConfig.RuleOptions()...))
	}
	a := analyzer.New(opts...)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Open the output destination once so reports from multiple profiles
	// append to the same file instead of overwriting each other.
	output := os.Stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports may contain profile data that should only be readable
		// by the owner, so the file is created with 0600.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	w := newReportWriter(cfg, output)

	// Use batch processor for parallel analysis if multiple profiles
	if len(cfg.ProfileFiles) > 1 && cfg.Concurrency > 1 {
		return runBatchAnalysis(ctx, cfg, a, mode, w, db, logger)
	}

	// Single profile or sequential analysis
	return runSequentialAnalysis(ctx, cfg, a, mode, w, db, logger)
}

// newReportWriter selects the report format requested by the configuration.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	if cfg.JSONReport {
		var opts []report.JSONWriterOption
		if cfg.PrettyJSON {
			opts = append(opts, report.WithPrettyPrint())
		}
		return report.NewJSONWriter(output, opts...)
	}
	if cfg.MarkdownReport {
		return report.NewMarkdownWriter(output)
	}
	return report.NewTextWriter(output)
}

// runSequentialAnalysis analyzes profiles one at a time.
func runSequentialAnalysis(ctx context.Context, cfg *config.Config, a *analyzer.Analyzer, mode model.Mode, w report.Writer, db *database.HistoryDB, logger *slog.Logger) error {
	failed := 0
	for _, path := range cfg.ProfileFiles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record, err := profile.Load(path)
		if err != nil {
			logger.Error("profile load failed", "file", path, "error", err)
			fmt.Fprintf(os.Stderr, "Load error for %s: %v\n", path, err)
			failed++
			continue
		}

		// Progress goes to stderr so stdout stays clean for reports.
		fmt.Fprintf(os.Stderr, "Analyzing %s...\n", path)
		startTime := time.Now()

		analysisReport, err := a.Analyze(record, mode)
		if err != nil {
			logger.Error("analysis failed", "file", path, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", path, err)
			failed++
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Fprintf(os.Stderr, "Analysis completed in %s\n\n", elapsed.Round(time.Millisecond))

		if _, err := w.Write(analysisReport); err != nil {
			logger.Error("report failed", "file", path, "error", err)
		}

		// Save to database if enabled
		if err := saveAnalysis(ctx, db, record, analysisReport, logger); err != nil {
			logger.Error("failed to save analysis", "file", path, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed", failed, len(cfg.ProfileFiles))
	}
	return nil
}

// runBatchAnalysis analyzes multiple profiles concurrently using BatchProcessor.
func runBatchAnalysis(ctx context.Context, cfg *config.Config, a *analyzer.Analyzer, mode model.Mode, w report.Writer, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Starting batch analysis of %d profiles (concurrency: %d)...\n\n",
		len(cfg.ProfileFiles), cfg.Concurrency)

	startTime := time.Now()

	// Load all profile files up front. Load failures are counted but do not
	// stop the remaining profiles from being analyzed.
	failed := 0
	items := make([]analyzer.BatchItem, 0, len(cfg.ProfileFiles))
	for _, path := range cfg.ProfileFiles {
		record, err := profile.Load(path)
		if err != nil {
			logger.Error("profile load failed", "file", path, "error", err)
			fmt.Fprintf(os.Stderr, "Load error for %s: %v\n", path, err)
			failed++
			continue
		}
		items = append(items, analyzer.BatchItem{Name: path, Record: record})
	}

	bp := analyzer.NewBatchProcessor(a,
		analyzer.WithConcurrency(cfg.Concurrency),
		analyzer.WithBatchLogger(logger),
	)

	results, err := bp.Process(ctx, items, mode)

	// Render and save in input order. Process preserves it, so results[i]
	// pairs with items[i].Record.
	for i, result := range results {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", result.Name, result.Err)
			failed++
			continue
		}

		fmt.Fprintf(os.Stderr, "[%d/%d] Analysis completed: %s\n", i+1, len(results), result.Name)

		if _, werr := w.Write(result.Report); werr != nil {
			logger.Error("report failed", "file", result.Name, "error", werr)
		}

		if serr := saveAnalysis(ctx, db, items[i].Record, result.Report, logger); serr != nil {
			logger.Error("failed to save analysis", "file", result.Name, "error", serr)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed", failed, len(cfg.ProfileFiles))
	}
	return nil
}

// saveAnalysis saves the analysis report to the history database.
// If db is nil, this function is a no-op.
func saveAnalysis(ctx context.Context, db *database.HistoryDB, record *model.ProfileRecord, analysisReport *model.AnalysisReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	// The subject comes from the input record, not the report: anonymized
	// reports carry no username, but history lookups need one.
	subject := subjectFor(record)
	id, err := db.SaveAnalysis(ctx, subject, record, analysisReport)
	if err != nil {
		return fmt.Errorf("failed to save analysis report: %w", err)
	}

	// The secure handler masks the subject attribute in this line.
	logger.Info("analysis saved to history", "id", id, "subject", subject)
	return nil
}

// subjectFor returns the history subject key for a record.
func subjectFor(record *model.ProfileRecord) string {
	if record.Username != "" {
		return record.Username
	}
	return "(unknown)"
}
