package sales

import (
	"context"

	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// SaleTxRunner porta da transação de registro de venda: estoque + venda +
// contas a receber atados à mesma transação.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		receivableRepo repository.ReceivableRepository,
	) error) error
}
