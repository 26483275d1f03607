package purchases

import (
	"context"

	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// TxRunner porta da transação de registro de compra: estoque + compra +
// contas a pagar atados à mesma transação.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		purchaseRepo repository.PurchaseRepository,
		payableRepo repository.PayableRepository,
	) error) error
}
