package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase registra uma compra de fornecedor. Criada atomicamente com as
// entradas de estoque e, quando a prazo, com a conta a pagar.
type Purchase struct {
	ID         string
	SupplierID string
	Condition  string // a_vista | a_prazo
	Total      decimal.Decimal
	Status     string     // pago | pendente
	DueDate    *time.Time // vencimento quando a prazo
	CreatedAt  time.Time
	CreatedBy  string
}

// PurchaseItem linha da compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
}
