package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de contas a pagar/receber.
const (
	FinanceStatusPendente = "pendente"
	FinanceStatusPago     = "pago"
)

// Payable conta a pagar. Os campos de vínculo (SupplierID, PurchaseID, AbateID)
// apontam para o registro de origem e podem estar vazios em despesas avulsas.
type Payable struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      string
	PaidAt      *time.Time
	SupplierID  string
	PurchaseID  string
	AbateID     string
	CreatedAt   time.Time
}

// Receivable conta a receber, normalmente originada por venda a prazo.
type Receivable struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      string
	PaidAt      *time.Time
	CustomerID  string
	SaleID      string
	CreatedAt   time.Time
}
