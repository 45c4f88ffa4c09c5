// Package model defines the core data structures used throughout ProfileScan.
//
// This package contains the following main types:
//   - ProfileRecord: A pre-collected snapshot of a social-media profile
//   - RedFlag: A single triggered check with its severity and score impact
//   - AnalysisReport: The full analysis result rendered at a privacy mode
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (rules, analyzer, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
