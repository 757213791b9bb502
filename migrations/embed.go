// Package migrations embeds the goose SQL migrations for the catalog schema.
// cmd/migrate and the integration tests both run them through a goose.Provider.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
