// Package report renders analysis reports for output.
//
// This package contains writers for different output formats:
//   - TextWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for documentation and sharing
//
// Design decision: We separate report rendering from report data structures
// (which are in the model package) to follow the single responsibility
// principle. Writers only format a finished report; the privacy mode has
// already been applied to the profile view by the analyzer, so no writer
// needs to redact anything beyond honoring the mode's section layout.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
