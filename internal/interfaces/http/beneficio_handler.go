package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sosmedical/clubsos-api/internal/application/usecase"
)

// BeneficioHandler maneja el catálogo de beneficios.
type BeneficioHandler struct {
	uc *usecase.BeneficioUseCase
}

// NewBeneficioHandler construye el handler de beneficios.
func NewBeneficioHandler(uc *usecase.BeneficioUseCase) *BeneficioHandler {
	return &BeneficioHandler{uc: uc}
}

// Listar godoc
// @Summary      Beneficios visibles para el miembro autenticado
// @Description  Los del pool de su empresa más los globales. Requiere cuenta activa.
// @Tags         beneficios
// @Produce      json
// @Success      200  {object}  dto.BeneficioListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/beneficios [get]
func (h *BeneficioHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.ListarParaMiembro(c.UserContext(), GetAuthUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
