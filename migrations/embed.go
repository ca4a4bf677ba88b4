// Package migrations embeds the goose SQL migrations so deployments never
// depend on files being shipped next to the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
