// Package migrations bundles the SQL schema for the tables the auto-reply service owns.
package migrations

import "embed"

// FS holds the golang-migrate up/down files.
//
//go:embed *.sql
var FS embed.FS
