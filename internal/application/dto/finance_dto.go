package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePayableRequest cadastro de conta a pagar avulsa (despesa).
type CreatePayableRequest struct {
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	DueDate     time.Time       `json:"vencimento"`
	SupplierID  string          `json:"fornecedor_id"`
}

// PayableResponse representação de conta a pagar.
type PayableResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	DueDate     time.Time       `json:"vencimento"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"pago_em,omitempty"`
	SupplierID  string          `json:"fornecedor_id,omitempty"`
	PurchaseID  string          `json:"compra_id,omitempty"`
	AbateID     string          `json:"abate_id,omitempty"`
	CreatedAt   time.Time       `json:"criado_em"`
}

// CreateReceivableRequest cadastro de conta a receber avulsa.
type CreateReceivableRequest struct {
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	DueDate     time.Time       `json:"vencimento"`
	CustomerID  string          `json:"cliente_id"`
}

// ReceivableResponse representação de conta a receber.
type ReceivableResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	DueDate     time.Time       `json:"vencimento"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"pago_em,omitempty"`
	CustomerID  string          `json:"cliente_id,omitempty"`
	SaleID      string          `json:"venda_id,omitempty"`
	CreatedAt   time.Time       `json:"criado_em"`
}
