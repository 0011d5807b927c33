package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/application/usecase"
)

// CatalogHandler tablas de referencia: IVA, alérgenos, grupos de comensales y tipos de comida.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateVAT godoc
// @Summary      Crear tarifa de IVA
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVATRequest  true  "Tarifa"
// @Success      201   {object}  dto.VATResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vats [post]
func (h *CatalogHandler) CreateVAT(c *fiber.Ctx) error {
	var in dto.CreateVATRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateVAT(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVATs godoc
// @Summary      Listar tarifas de IVA
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VATResponse
// @Router       /api/vats [get]
func (h *CatalogHandler) ListVATs(c *fiber.Ctx) error {
	out, err := h.uc.ListVATs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateAllergen godoc
// @Summary      Crear alérgeno
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAllergenRequest  true  "Alérgeno"
// @Success      201   {object}  dto.AllergenResponse
// @Router       /api/allergens [post]
func (h *CatalogHandler) CreateAllergen(c *fiber.Ctx) error {
	var in dto.CreateAllergenRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateAllergen(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAllergens godoc
// @Summary      Listar alérgenos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AllergenResponse
// @Router       /api/allergens [get]
func (h *CatalogHandler) ListAllergens(c *fiber.Ctx) error {
	out, err := h.uc.ListAllergens(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTargetGroup godoc
// @Summary      Crear grupo de comensales
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTargetGroupRequest  true  "Grupo"
// @Success      201   {object}  dto.TargetGroupResponse
// @Router       /api/target-groups [post]
func (h *CatalogHandler) CreateTargetGroup(c *fiber.Ctx) error {
	var in dto.CreateTargetGroupRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateTargetGroup(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTargetGroups godoc
// @Summary      Listar grupos de comensales
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TargetGroupResponse
// @Router       /api/target-groups [get]
func (h *CatalogHandler) ListTargetGroups(c *fiber.Ctx) error {
	out, err := h.uc.ListTargetGroups(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMealType godoc
// @Summary      Crear tipo de comida
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMealTypeRequest  true  "Tipo de comida"
// @Success      201   {object}  dto.MealTypeResponse
// @Router       /api/meal-types [post]
func (h *CatalogHandler) CreateMealType(c *fiber.Ctx) error {
	var in dto.CreateMealTypeRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateMealType(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMealTypes godoc
// @Summary      Listar tipos de comida
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MealTypeResponse
// @Router       /api/meal-types [get]
func (h *CatalogHandler) ListMealTypes(c *fiber.Ctx) error {
	out, err := h.uc.ListMealTypes(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
