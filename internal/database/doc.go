// Package database provides SQLite-based storage for psawg run history.
//
// This package implements the HistoryDB, which stores:
//   - Audit runs with their per-class counts
//   - Per-password audit results, with passwords masked before storage
//   - Wordlist generation runs (token and candidate counts)
//
// The database is a single file (psawg.db) under the XDG data directory,
// opened through the CGO-free modernc.org/sqlite driver.
package database
