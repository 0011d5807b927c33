package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/rs/zerolog/log"
)

// requestError error de entrada detectado en el handler (cuerpo, parámetros, validación).
type requestError struct {
	status  int
	code    string
	message string
	details interface{}
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{status: fiber.StatusBadRequest, code: code, message: message}
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden relevante: ErrRecipeUnits antes que ErrIncompatibleUnits porque el primero envuelve al segundo.
var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrArticleInUse, fiber.StatusConflict, "ARTICLE_IN_USE"},
	{domain.ErrAlreadyApproved, fiber.StatusConflict, "ALREADY_APPROVED"},
	{domain.ErrNotMenuDerived, fiber.StatusConflict, "NOT_MENU_DERIVED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrRecipeUnits, fiber.StatusUnprocessableEntity, "RECIPE_UNITS"},
	{domain.ErrIncompatibleUnits, fiber.StatusUnprocessableEntity, "INCOMPATIBLE_UNITS"},
	{domain.ErrMissingPrice, fiber.StatusUnprocessableEntity, "MISSING_PRICE"},
	{domain.ErrMissingTaxRate, fiber.StatusUnprocessableEntity, "MISSING_TAX_RATE"},
	{domain.ErrZeroValueDocument, fiber.StatusUnprocessableEntity, "ZERO_VALUE_DOCUMENT"},
	{domain.ErrNoMenuDefined, fiber.StatusUnprocessableEntity, "NO_MENU_DEFINED"},
}

// writeError traduce errores de la aplicación a dto.ErrorResponse.
// Los faltantes de stock se devuelven completos en Details.
func writeError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(reqErr.status).JSON(dto.ErrorResponse{Code: reqErr.code, Message: reqErr.message, Details: reqErr.details})
	}

	var shortage *domain.StockShortageError
	if errors.As(err, &shortage) {
		items := make([]dto.ShortageDTO, 0, len(shortage.Items))
		for _, it := range shortage.Items {
			items = append(items, toShortageDTO(it))
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error(), Details: items})
	}
	var single *domain.InsufficientStockError
	if errors.As(err, &single) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: err.Error(), Details: []dto.ShortageDTO{toShortageDTO(single)},
		})
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}

	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func toShortageDTO(e *domain.InsufficientStockError) dto.ShortageDTO {
	return dto.ShortageDTO{
		ArticleID:   e.ArticleID,
		ArticleName: e.ArticleName,
		Unit:        e.Unit,
		Available:   e.Available.String(),
		Requested:   e.Requested.String(),
	}
}

// ErrorHandler manejador de errores de Fiber para errores no devueltos por los handlers (404 de ruta, pánicos).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
