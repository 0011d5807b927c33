package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/kitchen-ledger/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los contadores de la bodega y el consumo del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (contadores por tabla, artículos bajo mínimo,
// valor del stock, top_consumed[5], date_label).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
