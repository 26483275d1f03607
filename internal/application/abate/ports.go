package abate

import (
	"context"

	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// AbateTxRunner porta das transações do fluxo abate/produção.
type AbateTxRunner interface {
	RunAbate(ctx context.Context, fn func(
		abateRepo repository.AbateRepository,
		producaoRepo repository.ProducaoRepository,
		payableRepo repository.PayableRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
