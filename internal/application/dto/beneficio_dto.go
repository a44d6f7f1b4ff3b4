package dto

import "github.com/shopspring/decimal"

// BeneficioResponse salida de un beneficio del pool de la empresa.
type BeneficioResponse struct {
	ID          string          `json:"id"`
	Titulo      string          `json:"titulo"`
	Descripcion string          `json:"descripcion"`
	Categoria   string          `json:"categoria"`
	Descuento   decimal.Decimal `json:"descuento"`
	Global      bool            `json:"global"`
}

// BeneficioListResponse listado de beneficios.
type BeneficioListResponse struct {
	Items []BeneficioResponse `json:"items"`
}
