// Package database manages the SQLite connection used by the durable scene
// repository. It owns connection-string pragmas (WAL, busy timeout, foreign
// keys), pool sizing appropriate for SQLite's single-writer model, and health
// checks. Schema creation is the responsibility of the repositories that use
// the connection.
package database
