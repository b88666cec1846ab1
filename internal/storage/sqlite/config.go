package sqlite

// Config carries the sqlite-specific connection settings.
type Config struct {
	// DSN is passed straight to the driver: a file path, a file: URI such
	// as "file:books.db?cache=shared", or ":memory:" for an ephemeral
	// per-connection database.
	DSN string
}
