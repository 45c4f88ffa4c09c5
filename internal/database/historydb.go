package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/profilescan/internal/model"
)

// HistoryDB provides SQLite-based storage for analysis reports.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all subjects rather
// than separate files per subject. This keeps cross-subject queries such
// as shared channel correlation cheap and simplifies backup/restore.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "profilescan.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Analyses store complete analysis reports as JSON plus query columns
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject TEXT NOT NULL,
		mode TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		score INTEGER NOT NULL,
		level TEXT NOT NULL,
		flags_count INTEGER NOT NULL,
		severity_summary TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_subject ON analyses(subject);
	CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp);

	-- Shared channel memberships track which subjects sit in which channels
	CREATE TABLE IF NOT EXISTS shared_channels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject TEXT NOT NULL,
		channel TEXT NOT NULL,
		UNIQUE(subject, channel)
	);

	CREATE INDEX IF NOT EXISTS idx_channels_channel ON shared_channels(channel);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAnalysis saves an analysis report for the given subject and records
// the subject's channel memberships for later correlation.
// Returns the database ID of the saved analysis.
func (hdb *HistoryDB) SaveAnalysis(ctx context.Context, subject string, record *model.ProfileRecord, report *model.AnalysisReport) (int64, error) {
	// Serialize report to JSON
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	severityJSON, _ := json.Marshal(report.CountBySeverity()) //nolint:errcheck,errchkjson // simple map; Marshal won't fail

	query := `
	INSERT INTO analyses (subject, mode, score, level, flags_count, severity_summary, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		subject,
		report.Meta.Mode.String(),
		report.RiskAssessment.Score,
		report.RiskAssessment.Level.String(),
		report.RiskAssessment.RedFlagsCount,
		string(severityJSON),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read analysis id: %w", err)
	}

	if record != nil {
		if err := hdb.saveChannels(ctx, subject, record.SharedChannels); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// saveChannels stores the subject's channel memberships.
// Duplicates are ignored so repeated analyses stay idempotent.
func (hdb *HistoryDB) saveChannels(ctx context.Context, subject string, channels []string) error {
	query := `
	INSERT OR IGNORE INTO shared_channels (subject, channel)
	VALUES (?, ?)
	`

	for _, channel := range channels {
		if channel == "" {
			continue
		}
		if _, err := hdb.db.ExecContext(ctx, query, subject, channel); err != nil {
			return fmt.Errorf("failed to save channel membership: %w", err)
		}
	}
	return nil
}

// GetAnalysisHistory retrieves all analysis reports for a subject,
// most recent first.
func (hdb *HistoryDB) GetAnalysisHistory(ctx context.Context, subject string) ([]*model.AnalysisReport, error) {
	query := `
	SELECT report_json FROM analyses
	WHERE subject = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis history: %w", err)
	}
	defer rows.Close()

	var reports []*model.AnalysisReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.AnalysisReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// AnalysisMetadata contains summary information about a stored analysis.
// This is used for displaying history without loading full reports.
type AnalysisMetadata struct {
	// ID is the unique identifier of the analysis in the database.
	ID int64

	// Subject is the analyzed profile's handle.
	Subject string

	// Mode is the privacy mode the analysis ran at.
	Mode string

	// Timestamp is when the analysis was performed.
	Timestamp time.Time

	// Score is the aggregated risk score.
	Score int

	// Level is the risk level derived from the score.
	Level string

	// FlagsCount is the number of red flags raised.
	FlagsCount int

	// SeveritySummary contains counts of flags by severity level.
	SeveritySummary map[string]int
}

// GetAnalysisHistoryWithMetadata retrieves analysis metadata for a subject.
// This is more efficient than GetAnalysisHistory when only metadata is needed.
func (hdb *HistoryDB) GetAnalysisHistoryWithMetadata(ctx context.Context, subject string) ([]AnalysisMetadata, error) {
	query := `
	SELECT id, subject, mode, timestamp, score, level, flags_count, severity_summary
	FROM analyses
	WHERE subject = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis history: %w", err)
	}
	defer rows.Close()

	var results []AnalysisMetadata
	for rows.Next() {
		var meta AnalysisMetadata
		var timestamp string
		var severityJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.Subject, &meta.Mode, &timestamp, &meta.Score, &meta.Level, &meta.FlagsCount, &severityJSON); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		// Parse timestamp
		meta.Timestamp = parseTimestamp(timestamp)

		// Parse severity summary
		if severityJSON.Valid && severityJSON.String != "" {
			if err := json.Unmarshal([]byte(severityJSON.String), &meta.SeveritySummary); err != nil {
				meta.SeveritySummary = make(map[string]int)
			}
		} else {
			meta.SeveritySummary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetAnalysisByID retrieves an analysis report by its database ID, along
// with the subject it was stored under. The stored subject is returned
// separately because the report's profile view may be anonymized.
// Returns a nil report without error when no such analysis exists.
func (hdb *HistoryDB) GetAnalysisByID(ctx context.Context, id int64) (*model.AnalysisReport, string, error) {
	query := `
	SELECT subject, report_json FROM analyses
	WHERE id = ?
	`

	var subject, reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&subject, &reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get analysis: %w", err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, "", fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, subject, nil
}

// ListSubjects returns all subjects with at least one stored analysis.
func (hdb *HistoryDB) ListSubjects(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT subject FROM analyses
	ORDER BY subject
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

// SubjectsSharingChannels returns the other subjects that share at least
// one channel with the given subject, mapped to the channels they share.
// An empty map means no overlap was recorded.
func (hdb *HistoryDB) SubjectsSharingChannels(ctx context.Context, subject string) (map[string][]string, error) {
	query := `
	SELECT DISTINCT a.subject, a.channel
	FROM shared_channels a
	JOIN shared_channels b ON a.channel = b.channel
	WHERE b.subject = ? AND a.subject != ?
	ORDER BY a.subject, a.channel
	`

	rows, err := hdb.db.QueryContext(ctx, query, subject, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to query shared channels: %w", err)
	}
	defer rows.Close()

	shared := make(map[string][]string)
	for rows.Next() {
		var other, channel string
		if err := rows.Scan(&other, &channel); err != nil {
			return nil, fmt.Errorf("failed to scan shared channel: %w", err)
		}
		shared[other] = append(shared[other], channel)
	}

	return shared, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
