// Package anonymize builds the mode-dependent profile views embedded in
// analysis reports.
//
// Three tiers exist: discovery strips every identifier, investigation masks
// the username but keeps the rest, and expert passes the record through
// complete. Callers always receive a fresh copy; the analyzed record itself
// is never modified.
//
// Design decision: anonymization happens once, when the report is assembled,
// rather than at render time. Whatever holds a report can only leak what its
// mode allows, no matter how the report is later serialized.
package anonymize
