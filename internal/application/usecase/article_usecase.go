package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ArticleUseCase casos de uso CRUD para artículos. Stock y precio se manejan vía aprobación de documentos.
type ArticleUseCase struct {
	txRunner ledger.TxRunner
	repo     repository.ArticleRepository
	catalog  repository.CatalogRepository
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(txRunner ledger.TxRunner, repo repository.ArticleRepository, catalog repository.CatalogRepository) *ArticleUseCase {
	return &ArticleUseCase{txRunner: txRunner, repo: repo, catalog: catalog}
}

// Create crea un nuevo artículo. OnStock inicia en 0 y AveragePrice en nulo.
func (uc *ArticleUseCase) Create(ctx context.Context, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	unit, ok := inventory.NormalizeUnit(in.Unit)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.MinOnStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkAllergens(ctx, in.Allergens); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	article := &entity.Article{
		ID:         uuid.New().String(),
		Code:       in.Code,
		Name:       in.Name,
		Unit:       unit,
		OnStock:    decimal.Zero,
		MinOnStock: inventory.RoundQuantity(in.MinOnStock),
		Allergens:  in.Allergens,
		Comment:    in.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ArticleUseCase) GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(article), nil
}

// Update actualiza los metadatos. Cambiar la unidad de un artículo con stock o referenciado
// retorna domain.ErrConflict porque las cantidades históricas cambiarían de significado.
// La fila queda bloqueada hasta el commit: una línea nueva sobre el artículo espera o se ve.
func (uc *ArticleUseCase) Update(ctx context.Context, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	if in.Allergens != nil {
		if err := uc.checkAllergens(ctx, in.Allergens); err != nil {
			return nil, err
		}
	}
	var article *entity.Article
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		var err error
		article, err = r.Articles.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if article == nil {
			return domain.ErrNotFound
		}
		if in.Code != nil && *in.Code != article.Code {
			other, err := r.Articles.GetByCode(ctx, *in.Code)
			if err != nil {
				return err
			}
			if other != nil {
				return domain.ErrDuplicate
			}
			article.Code = *in.Code
		}
		if in.Name != nil {
			article.Name = *in.Name
		}
		if in.Unit != nil {
			unit, ok := inventory.NormalizeUnit(*in.Unit)
			if !ok {
				return domain.ErrInvalidInput
			}
			if unit != article.Unit {
				used, err := r.Articles.IsReferenced(ctx, id)
				if err != nil {
					return err
				}
				if used || !article.OnStock.IsZero() {
					return domain.ErrConflict
				}
				article.Unit = unit
			}
		}
		if in.MinOnStock != nil {
			if in.MinOnStock.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			article.MinOnStock = inventory.RoundQuantity(*in.MinOnStock)
		}
		if in.Allergens != nil {
			article.Allergens = in.Allergens
		}
		if in.Comment != nil {
			article.Comment = *in.Comment
		}
		article.UpdatedAt = time.Now().UTC()
		return r.Articles.Update(ctx, article)
	})
	if err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// List lista artículos con paginación. belowMinimum restringe a los artículos bajo su mínimo.
func (uc *ArticleUseCase) List(ctx context.Context, belowMinimum bool, limit, offset int) (*dto.ArticleListResponse, error) {
	var (
		list []*entity.Article
		err  error
	)
	if belowMinimum {
		list, err = uc.repo.ListBelowMinimum(ctx)
	} else {
		list, err = uc.repo.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un artículo que no esté referenciado por documentos ni recetas.
func (uc *ArticleUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		article, err := r.Articles.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if article == nil {
			return domain.ErrNotFound
		}
		used, err := r.Articles.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrArticleInUse
		}
		return r.Articles.Delete(ctx, id)
	})
}

func (uc *ArticleUseCase) checkAllergens(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	known, err := uc.catalog.ListAllergens(ctx)
	if err != nil {
		return err
	}
	set := make(map[string]struct{}, len(known))
	for _, a := range known {
		set[a.Code] = struct{}{}
	}
	for _, c := range codes {
		if _, ok := set[c]; !ok {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	allergens := a.Allergens
	if allergens == nil {
		allergens = []string{}
	}
	return &dto.ArticleResponse{
		ID:           a.ID,
		Code:         a.Code,
		Name:         a.Name,
		Unit:         a.Unit,
		OnStock:      a.OnStock,
		AveragePrice: a.AveragePrice,
		TotalPrice:   a.TotalPrice().Round(2),
		MinOnStock:   a.MinOnStock,
		BelowMinimum: a.BelowMinimum(),
		Allergens:    allergens,
		Comment:      a.Comment,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToStockMovementResponse adapta una fila del kardex.
func ToStockMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		LineID:     m.LineID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		TotalPrice: m.TotalPrice,
		StockAfter: m.StockAfter,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}
