// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of subject identity fields (usernames, handles, bios)
//   - Automatic sanitization of secret values (passwords, tokens, keys)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - Subject identity fields (username, display_name, handle, bio)
//   - Platform handles and Telegram links detected by pattern matching
//   - Secret values detected by pattern matching (passwords, tokens, keys)
//   - Cryptocurrency wallet seeds, which appear in scam profile material
//
// Report output is tiered by privacy mode, but logs are not: a log line
// written in expert mode may end up in a shell history or a pasted issue
// long after the mode choice is forgotten. Even in verbose mode, identifying
// values are masked.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("record loaded",
//	    "username", "crypto_jane",  // Will be sanitized to "***REDACTED***"
//	    "file", "profiles/jane.json",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
