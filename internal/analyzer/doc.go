// Package analyzer orchestrates profile risk analysis.
//
// An Analyzer runs the check battery over a record, aggregates the risk
// score, derives recommendations, applies the privacy mode to the profile
// view, and assembles the final report. The BatchProcessor analyzes many
// records concurrently on one shared Analyzer.
//
// Design decision: this package is the single place where score, level,
// recommendations, and anonymization meet. Renderers downstream only format
// a finished report; they never re-derive analysis results.
package analyzer
