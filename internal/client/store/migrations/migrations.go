// Package migrations embeds the goose SQL migrations for the local store.
// Migrations are strictly additive: a newer binary opening an older database
// creates the collections it needs without touching existing data.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
