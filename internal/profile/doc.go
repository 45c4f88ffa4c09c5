// Package profile loads pre-collected profile records from disk.
//
// Records arrive as JSON or YAML files produced by collection tooling.
// The loader picks the decoder from the file extension and falls back to
// trying both for unknown extensions, so pipelines that rename files do
// not break.
//
// Design decision: loading validates the record immediately. A record with
// out-of-domain values fails here, at the file boundary, instead of deep
// inside analysis where the file name is no longer at hand.
package profile
