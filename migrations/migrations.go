// Package migrations embeds the schema files applied to the session store.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
