package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/profilescan/internal/model"
)

// Default configuration values.
const (
	// DefaultMode is the privacy mode used when none is requested.
	// Discovery is the most protective tier: reports carry no identifying
	// profile data, so accidental sharing stays harmless.
	DefaultMode = "discovery"

	// DefaultConcurrency of 4 concurrent analyses balances throughput with
	// resource usage when processing multiple profile files. Analysis is
	// CPU-cheap, so this mostly bounds file handling.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "profilescan"
)

// Config holds all configuration options for profilescan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., AnalysisConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// ProfileFiles is the list of profile files to analyze.
	// Must contain at least one path. Files may be JSON or YAML.
	ProfileFiles []string

	// Mode is the requested privacy mode as given on the command line.
	// Must parse to one of discovery, investigation, or expert.
	Mode string

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable
	// format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// PrettyJSON enables indented JSON output. Only meaningful together
	// with JSONReport.
	PrettyJSON bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .profilescan.yaml in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds settings loaded from the configuration file.
	// This is populated by LoadConfigFile and merged via File.ApplyTo.
	FileConfig *File

	// Concurrency is the number of concurrent analyses when processing
	// multiple profile files.
	Concurrency int

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/profilescan on Linux).
	DBDir string

	// SaveToDB indicates whether to save analysis results to the database.
	// Enabled by default; the --no-save flag turns it off.
	SaveToDB bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (mode, concurrency,
// database directory). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		Mode:        DefaultMode,
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for profilescan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/profilescan
// On macOS: ~/Library/Application Support/profilescan
// On Windows: %LOCALAPPDATA%\profilescan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one profile to analyze
	if len(c.ProfileFiles) == 0 {
		return ErrNoProfileFile
	}

	// Mode must be one of the known privacy tiers
	if _, err := model.ParseMode(c.Mode); err != nil {
		return ErrInvalidMode
	}

	// Concurrency must be positive; zero would mean no analysis
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingFormats
	}

	return nil
}

// ParsedMode returns the privacy mode as a model.Mode.
// It fails only on inputs that Validate would also reject.
func (c *Config) ParsedMode() (model.Mode, error) {
	return model.ParseMode(c.Mode)
}
