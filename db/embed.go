// Package db embeds the SQL migrations for the usint database.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
