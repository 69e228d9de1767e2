// Package migrations embeds the SQL migration files applied at startup.
package migrations

import "embed"

// FS holds the versioned SQL migrations for goose.
//
//go:embed *.sql
var FS embed.FS
