package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorcampo/gestor-api/internal/domain/entity"
)

// SaleRepository porta de persistência de vendas.
type SaleRepository interface {
	Create(s *entity.Sale) error
	CreateItem(i *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// UpdateNFe substitui o sub-registro fiscal da venda.
	UpdateNFe(saleID string, nfe entity.SaleNFe) error
	// GetByNFeRef localiza a venda pela referência fiscal (guarda de idempotência).
	GetByNFeRef(ref string) (*entity.Sale, error)
	// ListByNFeStatus devolve vendas cujo sub-registro fiscal está no status dado
	// (usado pelo poller de processando_autorizacao).
	ListByNFeStatus(status string, limit int) ([]*entity.Sale, error)
	// TotalBetween soma o total de vendas no intervalo (progresso de metas).
	TotalBetween(from, to time.Time) (decimal.Decimal, error)
}

// PurchaseRepository porta de persistência de compras.
type PurchaseRepository interface {
	Create(p *entity.Purchase) error
	CreateItem(i *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetItems(purchaseID string) ([]*entity.PurchaseItem, error)
	List(limit, offset int) ([]*entity.Purchase, error)
}
