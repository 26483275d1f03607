package repository

import (
	"time"

	"github.com/gestorcampo/gestor-api/internal/domain/entity"
)

// PayableRepository porta de contas a pagar.
type PayableRepository interface {
	Create(p *entity.Payable) error
	GetByID(id string) (*entity.Payable, error)
	// List filtra por status quando não vazio; ordena por vencimento ascendente.
	List(status string, limit, offset int) ([]*entity.Payable, error)
	// Settle marca a conta como paga (baixa).
	Settle(id string, paidAt time.Time) error
}

// ReceivableRepository porta de contas a receber.
type ReceivableRepository interface {
	Create(r *entity.Receivable) error
	GetByID(id string) (*entity.Receivable, error)
	List(status string, limit, offset int) ([]*entity.Receivable, error)
	Settle(id string, paidAt time.Time) error
}
