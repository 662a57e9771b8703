// Package migrations embeds the SQL migrations for the local catalog cache.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
