// Package migrations embeds the goose migration files, one directory per
// supported dialect. The schemas are equivalent; only column types differ.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS
