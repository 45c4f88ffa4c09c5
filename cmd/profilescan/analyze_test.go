package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/profilescan/internal/config"
	"github.com/nao1215/profilescan/internal/database"
	"github.com/nao1215/profilescan/internal/model"
	"github.com/nao1215/profilescan/internal/report"
)

// suspiciousProfileJSON is a profile fixture that triggers several checks.
const suspiciousProfileJSON = `{
  "username": "@crypto_jane",
  "display_name": "Jane Invest",
  "bio": "Guaranteed returns! DM me or join t.me/fast_money_vip",
  "declared_location": "Miami, FL",
  "technical_location": "Lagos, Nigeria",
  "following": 2000,
  "followers": 10
}`

// writeProfileFixture writes a profile file into a temp directory and
// returns its path.
func writeProfileFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write profile fixture: %v", err)
	}
	return path
}

// testLogger returns a quiet logger for exercising helpers.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestNewAnalyzeCmd tests the analyze command creation.
func TestNewAnalyzeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "analyze [profile-file]" {
			t.Errorf("expected use 'analyze [profile-file]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has mode flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("mode")
		if flag == nil {
			t.Fatal("expected mode flag")
		}
		if flag.Shorthand != "m" {
			t.Errorf("expected shorthand 'm', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultMode {
			t.Errorf("expected default %q, got %q", config.DefaultMode, flag.DefValue)
		}
	})

	t.Run("has concurrency flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("concurrency")
		if flag == nil {
			t.Fatal("expected concurrency flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has markdown flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("markdown")
		if flag == nil {
			t.Fatal("expected markdown flag")
		}
	})

	t.Run("has pretty flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("pretty")
		if flag == nil {
			t.Fatal("expected pretty flag")
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has no-save flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("no-save")
		if flag == nil {
			t.Fatal("expected no-save flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("does not have db-dir flag (uses XDG)", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("db-dir")
		if flag != nil {
			t.Error("db-dir flag should not exist (database location comes from the config file or XDG)")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		// Set verbose flag to true
		_ = root.PersistentFlags().Set("verbose", "true")

		// Get analyze subcommand
		analyzeCmd, _, err := root.Find([]string{"analyze"})
		if err != nil {
			t.Fatalf("failed to find analyze command: %v", err)
		}

		result := getVerboseFlag(analyzeCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if len(cfg.ProfileFiles) != 1 || cfg.ProfileFiles[0] != "profile.json" {
			t.Errorf("expected profile files [profile.json], got %v", cfg.ProfileFiles)
		}
		if cfg.Mode != config.DefaultMode {
			t.Errorf("expected mode %q, got %q", config.DefaultMode, cfg.Mode)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", config.DefaultConcurrency, cfg.Concurrency)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true by default")
		}
	})

	t.Run("builds config with custom mode", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("mode", "expert")
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Mode != "expert" {
			t.Errorf("expected mode 'expert', got %q", cfg.Mode)
		}
	})

	t.Run("builds config with custom concurrency", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("concurrency", "2")
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", cfg.Concurrency)
		}
	})

	t.Run("builds config with JSON flag", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("json", "true")
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
	})

	t.Run("builds config with pretty flag", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("json", "true")
		_ = cmd.Flags().Set("pretty", "true")
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.PrettyJSON {
			t.Error("expected PrettyJSON to be true")
		}
	})

	t.Run("builds config with multiple profiles", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		cfg, err := buildConfig(cmd, []string{"a.json", "b.yaml", "c.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.ProfileFiles) != 3 {
			t.Errorf("expected 3 profile files, got %d", len(cfg.ProfileFiles))
		}
	})

	t.Run("no-save flag disables database saving", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("no-save", "true")
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false with --no-save")
		}
	})

	t.Run("builds config with output file", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("output", "/tmp/report.json")
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ReportFile != "/tmp/report.json" {
			t.Errorf("expected ReportFile '/tmp/report.json', got %q", cfg.ReportFile)
		}
	})

	t.Run("builds config with valid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "profilescan.yaml")

		// Create a valid config file
		content := []byte(`
defaultMode: investigation
keywords:
  scam:
    - airdrop
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("config", configPath)
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.FileConfig == nil {
			t.Fatal("expected FileConfig to be loaded")
		}
		if len(cfg.FileConfig.Keywords.Scam) != 1 || cfg.FileConfig.Keywords.Scam[0] != "airdrop" {
			t.Errorf("expected scam keywords [airdrop], got %v", cfg.FileConfig.Keywords.Scam)
		}
		// The mode flag was left at its default, so the file value applies
		if cfg.Mode != "investigation" {
			t.Errorf("expected mode 'investigation' from config file, got %q", cfg.Mode)
		}
	})

	t.Run("mode flag wins over config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "profilescan.yaml")

		content := []byte("defaultMode: investigation\n")
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("config", configPath)
		_ = cmd.Flags().Set("mode", "expert")
		cfg, err := buildConfig(cmd, []string{"profile.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Mode != "expert" {
			t.Errorf("expected explicit mode 'expert' to win, got %q", cfg.Mode)
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yaml")

		// Create an invalid config file
		content := []byte(`{invalid yaml`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("config", configPath)
		_, err := buildConfig(cmd, []string{"profile.json"})
		if err == nil {
			t.Fatal("expected error for invalid config file")
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		cmd := NewAnalyzeCmd()
		_ = cmd.Flags().Set("config", "/nonexistent/profilescan.yaml")
		_, err := buildConfig(cmd, []string{"profile.json"})
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected 'not found' error, got %v", err)
		}
	})
}

// TestNewReportWriter tests report format selection.
func TestNewReportWriter(t *testing.T) {
	t.Parallel()

	t.Run("selects text writer by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := newReportWriter(&config.Config{}, &buf)
		if _, ok := w.(*report.TextWriter); !ok {
			t.Errorf("expected *report.TextWriter, got %T", w)
		}
	})

	t.Run("selects JSON writer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := newReportWriter(&config.Config{JSONReport: true}, &buf)
		if _, ok := w.(*report.JSONWriter); !ok {
			t.Errorf("expected *report.JSONWriter, got %T", w)
		}
	})

	t.Run("selects JSON writer with pretty printing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := newReportWriter(&config.Config{JSONReport: true, PrettyJSON: true}, &buf)
		if _, ok := w.(*report.JSONWriter); !ok {
			t.Errorf("expected *report.JSONWriter, got %T", w)
		}
	})

	t.Run("selects Markdown writer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := newReportWriter(&config.Config{MarkdownReport: true}, &buf)
		if _, ok := w.(*report.MarkdownWriter); !ok {
			t.Errorf("expected *report.MarkdownWriter, got %T", w)
		}
	})
}

// TestSubjectFor tests history subject key derivation.
func TestSubjectFor(t *testing.T) {
	t.Parallel()

	t.Run("returns username", func(t *testing.T) {
		t.Parallel()
		record := &model.ProfileRecord{Username: "@crypto_jane"}
		if got := subjectFor(record); got != "@crypto_jane" {
			t.Errorf("expected '@crypto_jane', got %q", got)
		}
	})

	t.Run("returns placeholder when username missing", func(t *testing.T) {
		t.Parallel()
		record := &model.ProfileRecord{Bio: "no handle here"}
		if got := subjectFor(record); got != "(unknown)" {
			t.Errorf("expected '(unknown)', got %q", got)
		}
	})
}

// TestSaveAnalysis tests the saveAnalysis function.
func TestSaveAnalysis(t *testing.T) {
	t.Parallel()

	logger := testLogger()
	ctx := context.Background()

	t.Run("returns nil when db is nil", func(t *testing.T) {
		t.Parallel()

		record := &model.ProfileRecord{Username: "@jane"}
		analysisReport := &model.AnalysisReport{}
		err := saveAnalysis(ctx, nil, record, analysisReport, logger)
		if err != nil {
			t.Errorf("expected nil error when db is nil, got %v", err)
		}
	})

	t.Run("saves analysis to database", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		db, err := database.Open(tmpDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		record := &model.ProfileRecord{Username: "@save_test"}
		analysisReport := &model.AnalysisReport{
			Meta:           model.ReportMeta{Tool: model.ToolName, Mode: model.ModeDiscovery},
			RiskAssessment: model.RiskAssessment{Score: 3, Level: model.RiskLevelLow},
		}

		err = saveAnalysis(ctx, db, record, analysisReport, logger)
		if err != nil {
			t.Fatalf("saveAnalysis() error = %v", err)
		}

		// Verify the analysis was saved under the record's username
		saved, err := db.GetAnalysisHistoryWithMetadata(ctx, "@save_test")
		if err != nil {
			t.Fatalf("failed to get saved analysis: %v", err)
		}
		if len(saved) != 1 {
			t.Fatalf("expected 1 saved analysis, got %d", len(saved))
		}
		if saved[0].Score != 3 {
			t.Errorf("expected score 3, got %d", saved[0].Score)
		}
	})

	t.Run("uses placeholder subject when username missing", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		db, err := database.Open(tmpDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		record := &model.ProfileRecord{Bio: "anonymous profile"}
		analysisReport := &model.AnalysisReport{}

		err = saveAnalysis(ctx, db, record, analysisReport, logger)
		if err != nil {
			t.Fatalf("saveAnalysis() error = %v", err)
		}

		saved, err := db.GetAnalysisHistoryWithMetadata(ctx, "(unknown)")
		if err != nil {
			t.Fatalf("failed to get saved analysis: %v", err)
		}
		if len(saved) != 1 {
			t.Errorf("expected 1 saved analysis under '(unknown)', got %d", len(saved))
		}
	})
}

// TestRunAnalyze tests the analysis run end to end with temporary
// database and report destinations.
func TestRunAnalyze(t *testing.T) {
	t.Parallel()

	logger := testLogger()

	t.Run("analyzes a single profile and writes a text report", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		profilePath := writeProfileFixture(t, tmpDir, "profile.json", suspiciousProfileJSON)
		reportPath := filepath.Join(tmpDir, "report.txt")
		dbDir := filepath.Join(tmpDir, "db")

		cfg := config.NewConfig()
		cfg.ProfileFiles = []string{profilePath}
		cfg.Concurrency = 1
		cfg.ReportFile = reportPath
		cfg.DBDir = dbDir

		if err := runAnalyze(context.Background(), cfg, logger); err != nil {
			t.Fatalf("runAnalyze() error = %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "PROFILESCAN ANALYSIS REPORT") {
			t.Error("expected text report header in output file")
		}

		// Verify the analysis was saved
		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		saved, err := db.GetAnalysisHistoryWithMetadata(context.Background(), "@crypto_jane")
		if err != nil {
			t.Fatalf("failed to get saved analysis: %v", err)
		}
		if len(saved) != 1 {
			t.Errorf("expected 1 saved analysis, got %d", len(saved))
		}
	})

	t.Run("writes JSON report", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		profilePath := writeProfileFixture(t, tmpDir, "profile.json", suspiciousProfileJSON)
		reportPath := filepath.Join(tmpDir, "report.json")

		cfg := config.NewConfig()
		cfg.ProfileFiles = []string{profilePath}
		cfg.Concurrency = 1
		cfg.JSONReport = true
		cfg.ReportFile = reportPath
		cfg.DBDir = filepath.Join(tmpDir, "db")

		if err := runAnalyze(context.Background(), cfg, logger); err != nil {
			t.Fatalf("runAnalyze() error = %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		var analysisReport model.AnalysisReport
		if err := json.Unmarshal(content, &analysisReport); err != nil {
			t.Fatalf("expected valid JSON report, got error: %v", err)
		}
		if analysisReport.Meta.Tool != model.ToolName {
			t.Errorf("expected tool %q, got %q", model.ToolName, analysisReport.Meta.Tool)
		}
		if !analysisReport.HasFlags() {
			t.Error("expected red flags for the suspicious fixture")
		}
	})

	t.Run("analyzes multiple profiles concurrently into one file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		paths := []string{
			writeProfileFixture(t, tmpDir, "a.json", `{"username": "@a", "bio": "hello"}`),
			writeProfileFixture(t, tmpDir, "b.json", `{"username": "@b", "bio": "guaranteed returns"}`),
			writeProfileFixture(t, tmpDir, "c.json", suspiciousProfileJSON),
		}
		reportPath := filepath.Join(tmpDir, "reports.txt")
		dbDir := filepath.Join(tmpDir, "db")

		cfg := config.NewConfig()
		cfg.ProfileFiles = paths
		cfg.Concurrency = 2
		cfg.ReportFile = reportPath
		cfg.DBDir = dbDir

		if err := runAnalyze(context.Background(), cfg, logger); err != nil {
			t.Fatalf("runAnalyze() error = %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		// All three reports land in the same file
		if got := strings.Count(string(content), "PROFILESCAN ANALYSIS REPORT"); got != 3 {
			t.Errorf("expected 3 reports in output file, got %d", got)
		}

		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		subjects, err := db.ListSubjects(context.Background())
		if err != nil {
			t.Fatalf("failed to list subjects: %v", err)
		}
		if len(subjects) != 3 {
			t.Errorf("expected 3 saved subjects, got %d (%v)", len(subjects), subjects)
		}
	})

	t.Run("returns error when a profile fails to load", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		good := writeProfileFixture(t, tmpDir, "good.json", suspiciousProfileJSON)
		missing := filepath.Join(tmpDir, "missing.json")

		cfg := config.NewConfig()
		cfg.ProfileFiles = []string{good, missing}
		cfg.Concurrency = 1
		cfg.ReportFile = filepath.Join(tmpDir, "report.txt")
		cfg.DBDir = filepath.Join(tmpDir, "db")

		err := runAnalyze(context.Background(), cfg, logger)
		if err == nil {
			t.Fatal("expected error when a profile fails to load")
		}
		if !strings.Contains(err.Error(), "1 of 2 profiles failed") {
			t.Errorf("expected '1 of 2 profiles failed' error, got %v", err)
		}
	})

	t.Run("counts batch load failures", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		paths := []string{
			writeProfileFixture(t, tmpDir, "a.json", `{"username": "@a"}`),
			filepath.Join(tmpDir, "missing.json"),
			writeProfileFixture(t, tmpDir, "c.json", `{"username": "@c"}`),
		}
		dbDir := filepath.Join(tmpDir, "db")

		cfg := config.NewConfig()
		cfg.ProfileFiles = paths
		cfg.Concurrency = 2
		cfg.ReportFile = filepath.Join(tmpDir, "report.txt")
		cfg.DBDir = dbDir

		err := runAnalyze(context.Background(), cfg, logger)
		if err == nil {
			t.Fatal("expected error when a profile fails to load")
		}
		if !strings.Contains(err.Error(), "1 of 3 profiles failed") {
			t.Errorf("expected '1 of 3 profiles failed' error, got %v", err)
		}

		// The loadable profiles were still analyzed and saved
		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		subjects, err := db.ListSubjects(context.Background())
		if err != nil {
			t.Fatalf("failed to list subjects: %v", err)
		}
		if len(subjects) != 2 {
			t.Errorf("expected 2 saved subjects, got %d (%v)", len(subjects), subjects)
		}
	})

	t.Run("skips database when saving is disabled", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		profilePath := writeProfileFixture(t, tmpDir, "profile.json", suspiciousProfileJSON)
		dbDir := filepath.Join(tmpDir, "db")

		cfg := config.NewConfig()
		cfg.ProfileFiles = []string{profilePath}
		cfg.Concurrency = 1
		cfg.ReportFile = filepath.Join(tmpDir, "report.txt")
		cfg.DBDir = dbDir
		cfg.SaveToDB = false

		if err := runAnalyze(context.Background(), cfg, logger); err != nil {
			t.Fatalf("runAnalyze() error = %v", err)
		}

		if _, err := os.Stat(filepath.Join(dbDir, "profilescan.db")); !os.IsNotExist(err) {
			t.Error("expected no database file when saving is disabled")
		}
	})

	t.Run("returns error for cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		tmpDir := t.TempDir()
		profilePath := writeProfileFixture(t, tmpDir, "profile.json", suspiciousProfileJSON)

		cfg := config.NewConfig()
		cfg.ProfileFiles = []string{profilePath}
		cfg.Concurrency = 1
		cfg.ReportFile = filepath.Join(tmpDir, "report.txt")
		cfg.DBDir = filepath.Join(tmpDir, "db")

		err := runAnalyze(ctx, cfg, logger)
		if err == nil {
			t.Error("expected error due to cancelled context")
		}
	})

	t.Run("creates parent directories for report file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		profilePath := writeProfileFixture(t, tmpDir, "profile.json", suspiciousProfileJSON)
		reportPath := filepath.Join(tmpDir, "subdir", "nested", "report.txt")

		cfg := config.NewConfig()
		cfg.ProfileFiles = []string{profilePath}
		cfg.Concurrency = 1
		cfg.ReportFile = reportPath
		cfg.DBDir = filepath.Join(tmpDir, "db")

		if err := runAnalyze(context.Background(), cfg, logger); err != nil {
			t.Fatalf("runAnalyze() error = %v", err)
		}

		if _, err := os.Stat(reportPath); os.IsNotExist(err) {
			t.Error("expected report file to be created in nested directory")
		}
	})
}

// TestRunAnalyzeCmdValidation tests runAnalyzeCmd validation failures.
// These paths fail before any logging or database setup, so they are safe
// to exercise through the full command.
func TestRunAnalyzeCmdValidation(t *testing.T) {
	t.Parallel()

	t.Run("returns error when no profile files are given", func(t *testing.T) {
		t.Parallel()

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"analyze"})

		err := rootCmd.Execute()
		if err == nil {
			t.Error("expected error for no arguments")
		}
		if !strings.Contains(err.Error(), "no profile file specified") {
			t.Errorf("expected 'no profile file specified' error, got: %v", err)
		}
	})

	t.Run("returns error for conflicting report formats", func(t *testing.T) {
		t.Parallel()

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"analyze", "--json", "--markdown", "profile.json"})

		err := rootCmd.Execute()
		if err == nil {
			t.Error("expected error for conflicting report formats")
		}
		if !strings.Contains(err.Error(), "conflicting report formats") {
			t.Errorf("expected 'conflicting report formats' error, got: %v", err)
		}
	})

	t.Run("returns error for unknown mode", func(t *testing.T) {
		t.Parallel()

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"analyze", "--mode", "stealth", "profile.json"})

		err := rootCmd.Execute()
		if err == nil {
			t.Error("expected error for unknown mode")
		}
		if !strings.Contains(err.Error(), "invalid mode") {
			t.Errorf("expected 'invalid mode' error, got: %v", err)
		}
	})

	t.Run("returns error for non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"analyze", "--concurrency", "0", "profile.json"})

		err := rootCmd.Execute()
		if err == nil {
			t.Error("expected error for non-positive concurrency")
		}
		if !strings.Contains(err.Error(), "invalid concurrency") {
			t.Errorf("expected 'invalid concurrency' error, got: %v", err)
		}
	})
}
