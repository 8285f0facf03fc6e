// Package repository defines persistence for panel configurations.
//
// A panel configuration is the saved topology of one panel together with
// its theme. Saving is explicit: the editor only writes when the user asks
// for it, and every save is also kept as a revision so earlier layouts can
// be listed and restored.
//
// # SQLite Implementation
//
// The sqlite subpackage stores panels in a single database file using the
// pure Go modernc.org/sqlite driver in WAL mode. The topology and theme are
// stored as JSON documents; only the panel id and timestamps are columns.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository
