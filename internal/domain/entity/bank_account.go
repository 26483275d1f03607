package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount representa uma conta bancária da empresa.
type BankAccount struct {
	ID        string
	Name      string
	Bank      string
	Agency    string
	Number    string
	Balance   decimal.Decimal
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
