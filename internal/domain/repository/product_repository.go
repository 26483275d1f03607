package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gestorcampo/gestor-api/internal/domain/entity"
)

// ProductRepository porta de persistência de produtos.
// UpdateQuantity só deve ser chamado dentro das transações de movimentação/venda,
// depois de GetForUpdate na mesma transação.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate lê o produto bloqueando a linha (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	UpdateQuantity(id string, quantity decimal.Decimal) error
	// List devolve os produtos ordenados por ativos primeiro e nome ascendente;
	// com includeInactive=false, só os ativos.
	List(includeInactive bool) ([]*entity.Product, error)
	SetStatus(id, status string) error
}
