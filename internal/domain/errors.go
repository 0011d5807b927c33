package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrIncompatibleUnits = errors.New("unidades incompatibles")
	ErrRecipeUnits       = errors.New("la receta tiene unidades incorrectas")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrMissingPrice      = errors.New("falta el precio sin IVA")
	ErrMissingTaxRate    = errors.New("falta la tarifa de IVA")
	ErrAlreadyApproved   = errors.New("el documento ya está aprobado")
	ErrNoMenuDefined     = errors.New("no hay menú definido para la fecha")
	ErrZeroValueDocument = errors.New("el documento no tiene valor")
	ErrNotMenuDerived    = errors.New("la salida no proviene de un menú")
	ErrArticleInUse      = errors.New("el artículo está referenciado")
)

// IncompatibleUnitsError se produce al convertir entre grupos de dimensión distintos (ej. kg -> ks).
type IncompatibleUnitsError struct {
	From string
	To   string
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("unidades incompatibles: %s -> %s", e.From, e.To)
}

func (e *IncompatibleUnitsError) Unwrap() error { return ErrIncompatibleUnits }

// RecipeUnitsError indica que un ingrediente no se puede expresar en la unidad del artículo.
type RecipeUnitsError struct {
	RecipeID   string
	RecipeName string
	ArticleID  string
	Err        error
}

func (e *RecipeUnitsError) Error() string {
	return fmt.Sprintf("receta %q, artículo %s: %v", e.RecipeName, e.ArticleID, e.Err)
}

// Unwrap expone tanto ErrRecipeUnits como el error de conversión original.
func (e *RecipeUnitsError) Unwrap() []error { return []error{ErrRecipeUnits, e.Err} }

// InsufficientStockError describe un faltante de un artículo (cantidades en su unidad nativa).
type InsufficientStockError struct {
	ArticleID   string
	ArticleName string
	Unit        string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: disponible %s %s, solicitado %s %s",
		e.ArticleName, e.Available.String(), e.Unit, e.Requested.String(), e.Unit)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// StockShortageError agrupa todos los faltantes detectados al aprobar una salida.
type StockShortageError struct {
	Items []*InsufficientStockError
}

func (e *StockShortageError) Error() string {
	if len(e.Items) == 1 {
		return e.Items[0].Error()
	}
	return fmt.Sprintf("stock insuficiente en %d artículos", len(e.Items))
}

// Unwrap permite errors.As(err, *InsufficientStockError) sobre el primer faltante.
func (e *StockShortageError) Unwrap() []error {
	errs := make([]error, 0, len(e.Items))
	for _, it := range e.Items {
		errs = append(errs, it)
	}
	return errs
}
