// Package migrations embeds the SQL migration files so the binary can bring
// its own schema up to date at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
