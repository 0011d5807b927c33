package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
)

var _ ledger.TxRunner = (*Store)(nil)

// state contenido completo del almacén. Los valores se guardan por copia.
type state struct {
	articles     map[string]entity.Article
	documents    map[string]entity.StockDocument // solo cabecera (Lines nil)
	lines        map[string]entity.DocumentLine
	movements    []entity.StockMovement
	recipes      map[string]entity.Recipe // sin ingredientes
	ingredients  map[string]entity.RecipeIngredient
	menus        map[string]entity.DailyMenu
	vats         map[string]entity.VAT
	allergens    map[string]entity.Allergen
	targetGroups map[string]entity.TargetGroup
	mealTypes    map[string]entity.MealType
}

func newState() *state {
	return &state{
		articles:     map[string]entity.Article{},
		documents:    map[string]entity.StockDocument{},
		lines:        map[string]entity.DocumentLine{},
		recipes:      map[string]entity.Recipe{},
		ingredients:  map[string]entity.RecipeIngredient{},
		menus:        map[string]entity.DailyMenu{},
		vats:         map[string]entity.VAT{},
		allergens:    map[string]entity.Allergen{},
		targetGroups: map[string]entity.TargetGroup{},
		mealTypes:    map[string]entity.MealType{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.articles {
		c.articles[k] = cloneArticle(v)
	}
	for k, v := range s.documents {
		c.documents[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.recipes {
		c.recipes[k] = v
	}
	for k, v := range s.ingredients {
		c.ingredients[k] = v
	}
	for k, v := range s.menus {
		c.menus[k] = v
	}
	for k, v := range s.vats {
		c.vats[k] = v
	}
	for k, v := range s.allergens {
		c.allergens[k] = v
	}
	for k, v := range s.targetGroups {
		c.targetGroups[k] = v
	}
	for k, v := range s.mealTypes {
		c.mealTypes[k] = v
	}
	return c
}

// Store almacén en memoria que implementa todos los puertos de persistencia y ledger.TxRunner.
// Una transacción trabaja sobre una copia del estado y la publica solo si fn no retorna error.
// Las transacciones se serializan con un mutex, lo que equivale a bloquear todas las filas.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a una copia del estado. Commit = reemplazar el estado.
func (s *Store) Run(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	v := &view{store: s, tx: work}
	if err := fn(v.repos()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repos repositorios fuera de transacción (cada llamada toma el mutex).
func (s *Store) Repos() ledger.TxRepos {
	return (&view{store: s}).repos()
}

func (s *Store) Articles() *ArticleRepo { return &ArticleRepo{v: &view{store: s}} }
func (s *Store) Documents() *DocumentRepo { return &DocumentRepo{v: &view{store: s}} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{v: &view{store: s}} }
func (s *Store) Recipes() *RecipeRepo { return &RecipeRepo{v: &view{store: s}} }
func (s *Store) Menus() *MenuRepo { return &MenuRepo{v: &view{store: s}} }
func (s *Store) VATs() *VATRepo { return &VATRepo{v: &view{store: s}} }
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{v: &view{store: s}} }
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{v: &view{store: s}} }

// view acceso al estado: dentro de una tx usa la copia sin bloquear; fuera, el estado publicado con mutex.
type view struct {
	store *Store
	tx    *state
}

func (v *view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

// write fuera de transacción trabaja sobre una copia y la publica solo si no hay error,
// igual que Run, para que una escritura fallida no deje cambios a medias.
func (v *view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	work := v.store.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	v.store.st = work
	return nil
}

func (v *view) repos() ledger.TxRepos {
	return ledger.TxRepos{
		Articles:  &ArticleRepo{v: v},
		Documents: &DocumentRepo{v: v},
		Movements: &MovementRepo{v: v},
		Recipes:   &RecipeRepo{v: v},
		Menus:     &MenuRepo{v: v},
		VATs:      &VATRepo{v: v},
	}
}

func cloneArticle(a entity.Article) entity.Article {
	if a.AveragePrice != nil {
		p := *a.AveragePrice
		a.AveragePrice = &p
	}
	a.Allergens = append([]string(nil), a.Allergens...)
	return a
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
