package repository

import (
	"context"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
)

// VATRepository tarifas de IVA (datos de referencia inmutables).
type VATRepository interface {
	Create(ctx context.Context, vat *entity.VAT) error
	GetByID(ctx context.Context, id string) (*entity.VAT, error)
	List(ctx context.Context) ([]*entity.VAT, error)
}

// CatalogRepository catálogos auxiliares: alérgenos, grupos de comensales y tipos de comida.
type CatalogRepository interface {
	CreateAllergen(ctx context.Context, a *entity.Allergen) error
	ListAllergens(ctx context.Context) ([]*entity.Allergen, error)

	CreateTargetGroup(ctx context.Context, g *entity.TargetGroup) error
	GetTargetGroup(ctx context.Context, id string) (*entity.TargetGroup, error)
	ListTargetGroups(ctx context.Context) ([]*entity.TargetGroup, error)

	CreateMealType(ctx context.Context, m *entity.MealType) error
	GetMealType(ctx context.Context, id string) (*entity.MealType, error)
	ListMealTypes(ctx context.Context) ([]*entity.MealType, error)
}
