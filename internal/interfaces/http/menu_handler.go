package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/application/usecase"
)

// MenuHandler maneja el menú diario por grupo de comensales.
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Create godoc
// @Summary      Agregar receta al menú del día
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDailyMenuRequest  true  "Entrada de menú"
// @Success      201   {object}  dto.DailyMenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDailyMenuRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada de menú
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.DailyMenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Menú de una fecha
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        date             query  string  true   "Fecha (YYYY-MM-DD)"
// @Param        target_group_id  query  string  false  "Grupo de comensales"
// @Success      200  {array}   dto.DailyMenuResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	date, err := usecase.ParseDate(c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByDate(c.UserContext(), date, optionalQuery(c, "target_group_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar entrada de menú
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la entrada"
// @Param        body  body  dto.UpdateDailyMenuRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DailyMenuResponse
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDailyMenuRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Quitar entrada de menú
// @Tags         menus
// @Security     Bearer
// @Param        id   path  string  true  "ID de la entrada"
// @Success      204
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Requirements godoc
// @Summary      Requerimientos de materia prima del menú
// @Description  Suma los ingredientes de todas las recetas del día, escalados a las porciones pedidas.
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        date             query  string  true   "Fecha (YYYY-MM-DD)"
// @Param        target_group_id  query  string  false  "Grupo de comensales"
// @Success      200  {object}  dto.MenuRequirementsResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/menus/requirements [get]
func (h *MenuHandler) Requirements(c *fiber.Ctx) error {
	date, err := usecase.ParseDate(c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Requirements(c.UserContext(), date, optionalQuery(c, "target_group_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
