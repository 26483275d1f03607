package repository

import "github.com/gestorcampo/gestor-api/internal/domain/entity"

// StockMovementRepository porta do registro de auditoria de movimentações.
// Só há Create e leituras: movimentações são imutáveis.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	List(limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
