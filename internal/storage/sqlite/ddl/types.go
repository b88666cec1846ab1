// Package ddl generates SQLite schemas for the pipeline's tables.
package ddl

import "strings"

// MapType converts a logical contract type into a SQLite column type. With
// SQLite's affinity model only a few distinctions matter: integers and
// booleans share INTEGER, floats get REAL, exact money amounts NUMERIC, and
// dates stay TEXT because ISO-8601 strings compare and sort correctly.
// Anything unrecognized falls back to TEXT.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "INTEGER"
	case "bool", "boolean":
		return "INTEGER"
	case "float", "double", "real":
		return "REAL"
	case "numeric", "decimal":
		return "NUMERIC"
	case "date", "timestamp", "datetime":
		return "TEXT"
	default:
		return "TEXT"
	}
}
