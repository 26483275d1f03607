package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee registro de funcionário (folha simplificada).
type Employee struct {
	ID            string
	Name          string
	Document      string // CPF só dígitos
	Position      string // cargo/função
	Salary        decimal.Decimal
	AdmissionDate time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
