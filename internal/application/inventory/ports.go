package inventory

import (
	"context"

	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// TxRunner porta da transação do motor de estoque: executa o callback com
// repositórios atados à mesma transação, commit no sucesso e rollback em erro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
