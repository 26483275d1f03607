package repository

import "github.com/gestorcampo/gestor-api/internal/domain/entity"

// AbateRepository porta de lotes de abate.
type AbateRepository interface {
	Create(a *entity.Abate) error
	GetByID(id string) (*entity.Abate, error)
	// GetForUpdate lê o lote bloqueando a linha (a produção troca o status
	// dentro da mesma transação das entradas de estoque).
	GetForUpdate(id string) (*entity.Abate, error)
	SetStatus(id, status string) error
	List(limit, offset int) ([]*entity.Abate, error)
}

// ProducaoRepository porta de produções (conversão de abate em estoque).
type ProducaoRepository interface {
	Create(p *entity.Producao) error
	CreateItem(i *entity.ProducaoItem) error
	GetByID(id string) (*entity.Producao, error)
	GetItems(producaoID string) ([]*entity.ProducaoItem, error)
	ListByAbate(abateID string) ([]*entity.Producao, error)
}
