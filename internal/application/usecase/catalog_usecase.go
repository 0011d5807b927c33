package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

// CatalogUseCase datos de referencia: IVA, alérgenos, grupos de comensales y tipos de comida.
type CatalogUseCase struct {
	vats    repository.VATRepository
	catalog repository.CatalogRepository
}

func NewCatalogUseCase(vats repository.VATRepository, catalog repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{vats: vats, catalog: catalog}
}

// CreateVAT registra una tarifa. Las tarifas no se editan: una línea aprobada depende de ellas.
func (uc *CatalogUseCase) CreateVAT(ctx context.Context, in dto.CreateVATRequest) (*dto.VATResponse, error) {
	if in.Percentage < 0 || in.Percentage > 100 || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.VAT{ID: uuid.New().String(), Percentage: in.Percentage, Name: in.Name}
	if err := uc.vats.Create(ctx, v); err != nil {
		return nil, err
	}
	return &dto.VATResponse{ID: v.ID, Percentage: v.Percentage, Name: v.Name}, nil
}

func (uc *CatalogUseCase) ListVATs(ctx context.Context) ([]dto.VATResponse, error) {
	list, err := uc.vats.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VATResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.VATResponse{ID: v.ID, Percentage: v.Percentage, Name: v.Name})
	}
	return out, nil
}

func (uc *CatalogUseCase) CreateAllergen(ctx context.Context, in dto.CreateAllergenRequest) (*dto.AllergenResponse, error) {
	if in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	a := &entity.Allergen{ID: uuid.New().String(), Code: in.Code, Description: in.Description}
	if err := uc.catalog.CreateAllergen(ctx, a); err != nil {
		return nil, err
	}
	return &dto.AllergenResponse{ID: a.ID, Code: a.Code, Description: a.Description}, nil
}

func (uc *CatalogUseCase) ListAllergens(ctx context.Context) ([]dto.AllergenResponse, error) {
	list, err := uc.catalog.ListAllergens(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AllergenResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AllergenResponse{ID: a.ID, Code: a.Code, Description: a.Description})
	}
	return out, nil
}

func (uc *CatalogUseCase) CreateTargetGroup(ctx context.Context, in dto.CreateTargetGroupRequest) (*dto.TargetGroupResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	g := &entity.TargetGroup{ID: uuid.New().String(), Name: in.Name}
	if err := uc.catalog.CreateTargetGroup(ctx, g); err != nil {
		return nil, err
	}
	return &dto.TargetGroupResponse{ID: g.ID, Name: g.Name}, nil
}

func (uc *CatalogUseCase) ListTargetGroups(ctx context.Context) ([]dto.TargetGroupResponse, error) {
	list, err := uc.catalog.ListTargetGroups(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TargetGroupResponse, 0, len(list))
	for _, g := range list {
		out = append(out, dto.TargetGroupResponse{ID: g.ID, Name: g.Name})
	}
	return out, nil
}

func (uc *CatalogUseCase) CreateMealType(ctx context.Context, in dto.CreateMealTypeRequest) (*dto.MealTypeResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.MealType{ID: uuid.New().String(), Name: in.Name, Category: in.Category}
	if err := uc.catalog.CreateMealType(ctx, m); err != nil {
		return nil, err
	}
	return &dto.MealTypeResponse{ID: m.ID, Name: m.Name, Category: m.Category}, nil
}

func (uc *CatalogUseCase) ListMealTypes(ctx context.Context) ([]dto.MealTypeResponse, error) {
	list, err := uc.catalog.ListMealTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MealTypeResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MealTypeResponse{ID: m.ID, Name: m.Name, Category: m.Category})
	}
	return out, nil
}
