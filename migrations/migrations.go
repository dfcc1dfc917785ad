// Package migrations embebe el esquema SQL que aplica la API al arrancar (DB_AUTO_MIGRATE).
package migrations

import "embed"

// Files archivos NNNN_nombre.sql, aplicados en orden de nombre.
//
//go:embed *.sql
var Files embed.FS
