// Package migrations embeds the bootstrap DDL applied at startup.
package migrations

import _ "embed"

//go:embed 0001_portrait_requests.sql
var Schema string
