package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/application/usecase"
)

// RecipeHandler maneja recetas normalizadas y sus ingredientes.
type RecipeHandler struct {
	uc *usecase.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *usecase.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "Receta con ingredientes"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
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
// @Summary      Obtener receta
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recetas
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.RecipeListResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c, 50)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera de receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la receta"
// @Param        body  body  dto.UpdateRecipeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RecipeResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecipeRequest
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
// @Summary      Eliminar receta
// @Tags         recipes
// @Security     Bearer
// @Param        id   path  string  true  "ID de la receta"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddIngredient godoc
// @Summary      Agregar ingrediente
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la receta"
// @Param        body  body  dto.RecipeIngredientRequest  true  "Ingrediente"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/ingredients [post]
func (h *RecipeHandler) AddIngredient(c *fiber.Ctx) error {
	var in dto.RecipeIngredientRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddIngredient(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateIngredient godoc
// @Summary      Editar ingrediente
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id             path  string                       true  "ID de la receta"
// @Param        ingredient_id  path  string                       true  "ID del ingrediente"
// @Param        body           body  dto.RecipeIngredientRequest  true  "Ingrediente"
// @Success      200   {object}  dto.RecipeResponse
// @Router       /api/recipes/{id}/ingredients/{ingredient_id} [put]
func (h *RecipeHandler) UpdateIngredient(c *fiber.Ctx) error {
	var in dto.RecipeIngredientRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateIngredient(c.UserContext(), c.Params("id"), c.Params("ingredient_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteIngredient godoc
// @Summary      Quitar ingrediente
// @Tags         recipes
// @Security     Bearer
// @Param        id             path  string  true  "ID de la receta"
// @Param        ingredient_id  path  string  true  "ID del ingrediente"
// @Success      204
// @Router       /api/recipes/{id}/ingredients/{ingredient_id} [delete]
func (h *RecipeHandler) DeleteIngredient(c *fiber.Ctx) error {
	if err := h.uc.DeleteIngredient(c.UserContext(), c.Params("id"), c.Params("ingredient_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Expand godoc
// @Summary      Requerimientos de la receta para N porciones
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID de la receta"
// @Param        portions  query  int     true   "Porciones"
// @Success      200  {object}  dto.RecipeExpansionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/expand [get]
func (h *RecipeHandler) Expand(c *fiber.Ctx) error {
	out, err := h.uc.Expand(c.UserContext(), c.Params("id"), c.QueryInt("portions", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
