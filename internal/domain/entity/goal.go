package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal meta mensal de vendas. MonthRef no formato "2006-01".
type Goal struct {
	ID        string
	MonthRef  string
	Amount    decimal.Decimal
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
