// Package database provides SQLite-based storage for profilescan.
//
// This package implements the HistoryDB, which stores:
//   - Analysis reports for historical comparison
//   - Shared channel memberships for cross-profile correlation
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// The database is local storage under the user's data directory. Rows key
// on the real subject handle so history lines up across privacy modes; only
// rendered reports are subject to anonymization.
package database
