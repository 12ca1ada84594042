package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// AnalyticsHandler maneja el reporte de rotación de productos.
type AnalyticsHandler struct {
	uc *analytics.MovementUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.MovementUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetMovement godoc
// @Summary      Productos de mayor y menor rotación
// @Description  Rotación = suma de |cantidad| de ventas y traslados (las importaciones no cuentan).
//               Devuelve el top 5 de mayor rotación y el top 5 de menor rotación; con menos de 10
//               productos las listas se solapan.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        store_id    query  int     false  "Filtrar por tienda"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.MovementReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/analytics [get]
func (h *AnalyticsHandler) GetMovement(c *fiber.Ctx) error {
	var req dto.MovementReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	report, err := h.uc.GetMovementReport(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
