package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Beneficio representa un beneficio del pool de una empresa. EmpresaID en nil
// marca un beneficio global, visible para miembros de cualquier empresa.
type Beneficio struct {
	ID          string
	EmpresaID   *string
	Titulo      string
	Descripcion string
	Categoria   string
	Descuento   decimal.Decimal // porcentaje de descuento, ej. 15.50
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
