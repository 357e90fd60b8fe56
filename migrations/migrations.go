// Package migrations embeds the SQL schema and seed files applied by
// cmd/migrate.
package migrations

import "embed"

//go:embed *.sql seeds/*.sql
var Files embed.FS
