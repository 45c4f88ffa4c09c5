package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoProfileFile is returned when no profile file is specified.
	// This error occurs when the command line provides no positional arguments.
	ErrNoProfileFile = errors.New("no profile file specified: provide at least one JSON or YAML profile")

	// ErrInvalidMode is returned when the privacy mode is not one of
	// discovery, investigation, or expert.
	ErrInvalidMode = errors.New("invalid mode: must be discovery, investigation, or expert")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// A concurrency of zero would mean no analyses run at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
