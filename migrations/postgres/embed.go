// Package postgres embebe los archivos SQL de migración.
package postgres

import "embed"

// FS contiene las migraciones del esquema.
// Formato de archivo: {version}_{name}.sql (ej: 0001_init.sql)
//
//go:embed *.sql
var FS embed.FS

// Dir es el directorio dentro de FS donde viven las migraciones.
const Dir = "."
