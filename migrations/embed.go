// Package migrations holds the goose SQL migrations for the products store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
