package ledger

import (
	"context"

	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Articles  repository.ArticleRepository
	Documents repository.StockDocumentRepository
	Movements repository.StockMovementRepository
	Recipes   repository.RecipeRepository
	Menus     repository.DailyMenuRepository
	VATs      repository.VATRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback y ningún cambio queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// Resultados de una operación del motor, usados como etiqueta de métricas.
const (
	OutcomeApproved        = "approved"
	OutcomeCreated         = "created"
	OutcomeAlreadyApproved = "already_approved"
	OutcomeShortage        = "shortage"
	OutcomeZeroValue       = "zero_value"
	OutcomeNoMenu          = "no_menu"
	OutcomeInvalid         = "invalid"
	OutcomeError           = "error"
)

// Metrics puerto de métricas del motor de aprobación.
type Metrics interface {
	ObserveApproval(kind, outcome string)
	ObserveMenuIssue(outcome string, lines int)
}

// NoopMetrics implementación vacía para tests o cuando las métricas están deshabilitadas.
type NoopMetrics struct{}

func (NoopMetrics) ObserveApproval(string, string) {}
func (NoopMetrics) ObserveMenuIssue(string, int)   {}
