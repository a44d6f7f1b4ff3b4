// Package migrations embebe los archivos SQL del esquema para aplicarlos con
// goose al arrancar.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
