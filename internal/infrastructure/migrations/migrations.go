// Package migrations embeds the schema for every supported store.
package migrations

import "embed"

// FS holds one directory per dialect: sqlite/ and postgres/.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
