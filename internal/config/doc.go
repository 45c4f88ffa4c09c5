// Package config provides configuration structures and utilities for profilescan.
// It defines the main configuration options for profile analysis, privacy modes,
// keyword vocabularies, and report generation preferences.
package config
