package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

// DateLayout formato de fecha de los menús en la API.
const DateLayout = "2006-01-02"

// MenuUseCase casos de uso del menú diario.
type MenuUseCase struct {
	repo     repository.DailyMenuRepository
	recipes  repository.RecipeRepository
	articles repository.ArticleRepository
	catalog  repository.CatalogRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(
	repo repository.DailyMenuRepository,
	recipes repository.RecipeRepository,
	articles repository.ArticleRepository,
	catalog repository.CatalogRepository,
) *MenuUseCase {
	return &MenuUseCase{repo: repo, recipes: recipes, articles: articles, catalog: catalog}
}

// ParseDate interpreta una fecha YYYY-MM-DD como medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return ledger.DateOnly(t), nil
}

// Create programa una receta para una fecha, grupo y tipo de comida.
func (uc *MenuUseCase) Create(ctx context.Context, in dto.CreateDailyMenuRequest) (*dto.DailyMenuResponse, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	entry := &entity.DailyMenu{
		ID:            uuid.New().String(),
		Date:          date,
		Amount:        in.Amount,
		TargetGroupID: in.TargetGroupID,
		MealTypeID:    in.MealTypeID,
		RecipeID:      in.RecipeID,
		Comment:       in.Comment,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.validate(ctx, entry); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return toDailyMenuResponse(entry), nil
}

// GetByID obtiene una entrada del menú.
func (uc *MenuUseCase) GetByID(ctx context.Context, id string) (*dto.DailyMenuResponse, error) {
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return toDailyMenuResponse(entry), nil
}

// Update edita una entrada. Las salidas ya generadas desde el menú no cambian hasta refrescarlas.
func (uc *MenuUseCase) Update(ctx context.Context, id string, in dto.UpdateDailyMenuRequest) (*dto.DailyMenuResponse, error) {
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if in.Date != nil {
		date, err := ParseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		entry.Date = date
	}
	if in.Amount != nil {
		entry.Amount = *in.Amount
	}
	if in.TargetGroupID != nil {
		entry.TargetGroupID = *in.TargetGroupID
	}
	if in.MealTypeID != nil {
		entry.MealTypeID = *in.MealTypeID
	}
	if in.RecipeID != nil {
		entry.RecipeID = *in.RecipeID
	}
	if in.Comment != nil {
		entry.Comment = *in.Comment
	}
	if err := uc.validate(ctx, entry); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return toDailyMenuResponse(entry), nil
}

// Delete elimina una entrada del menú.
func (uc *MenuUseCase) Delete(ctx context.Context, id string) error {
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// ListByDate entradas de una fecha, opcionalmente de un solo grupo.
func (uc *MenuUseCase) ListByDate(ctx context.Context, date time.Time, targetGroupID *string) ([]dto.DailyMenuResponse, error) {
	list, err := uc.repo.ListByDate(ctx, date, targetGroupID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyMenuResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toDailyMenuResponse(e))
	}
	return out, nil
}

// Requirements consumo agregado del menú sin crear documentos.
func (uc *MenuUseCase) Requirements(ctx context.Context, date time.Time, targetGroupID *string) (*dto.MenuRequirementsResponse, error) {
	exp, err := ledger.ExpandMenu(ctx, uc.repo, uc.recipes, uc.articles, date, targetGroupID)
	if err != nil {
		return nil, err
	}
	return &dto.MenuRequirementsResponse{
		Date:          ledger.DateOnly(date).Format(DateLayout),
		TargetGroupID: targetGroupID,
		Entries:       len(exp.Entries),
		Requirements:  toRequirementDTOs(exp.Requirements, exp.Articles),
	}, nil
}

func (uc *MenuUseCase) validate(ctx context.Context, e *entity.DailyMenu) error {
	if e.Amount <= 0 {
		return domain.ErrInvalidInput
	}
	tg, err := uc.catalog.GetTargetGroup(ctx, e.TargetGroupID)
	if err != nil {
		return err
	}
	if tg == nil {
		return fmt.Errorf("grupo %s: %w", e.TargetGroupID, domain.ErrNotFound)
	}
	mt, err := uc.catalog.GetMealType(ctx, e.MealTypeID)
	if err != nil {
		return err
	}
	if mt == nil {
		return fmt.Errorf("tipo de comida %s: %w", e.MealTypeID, domain.ErrNotFound)
	}
	r, err := uc.recipes.GetByID(ctx, e.RecipeID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("receta %s: %w", e.RecipeID, domain.ErrNotFound)
	}
	return nil
}

func toDailyMenuResponse(e *entity.DailyMenu) *dto.DailyMenuResponse {
	return &dto.DailyMenuResponse{
		ID:            e.ID,
		Date:          e.Date.Format(DateLayout),
		Amount:        e.Amount,
		TargetGroupID: e.TargetGroupID,
		MealTypeID:    e.MealTypeID,
		RecipeID:      e.RecipeID,
		Comment:       e.Comment,
		CreatedAt:     e.CreatedAt,
	}
}
