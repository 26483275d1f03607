// Package inventory implementa o motor de estoque: a movimentação transacional
// que mantém o invariante de quantidade não negativa.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// UseCase caso de uso de movimentação de estoque.
type UseCase struct {
	tx       TxRunner
	movs     repository.StockMovementRepository
	notifier *events.Notifier
}

// NewUseCase constrói o caso de uso. movs é o repositório fora de transação,
// usado só nas listagens.
func NewUseCase(tx TxRunner, movs repository.StockMovementRepository, notifier *events.Notifier) *UseCase {
	return &UseCase{tx: tx, movs: movs, notifier: notifier}
}

// RegisterMovement registra uma movimentação manual: lê o produto com bloqueio
// de linha, valida o invariante e grava quantidade nova + registro de auditoria
// na mesma transação. Em saída que deixaria o estoque negativo, aborta tudo com
// ErrInsufficientStock — nenhuma escrita parcial fica visível.
func (uc *UseCase) RegisterMovement(ctx context.Context, actorID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" || in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Direction != entity.MovementEntrada && in.Direction != entity.MovementSaida {
		return nil, domain.ErrInvalidInput
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Direction: in.Direction,
		Reason:    in.Reason,
		ActorID:   actorID,
		CreatedAt: time.Now(),
	}

	err := uc.tx.Run(ctx, func(products repository.ProductRepository, movs repository.StockMovementRepository) error {
		return ApplyMovement(products, movs, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(events.Change{Entity: "products", Action: "updated", ID: in.ProductID})
	return toMovementResponse(mov), nil
}

// ApplyMovement aplica uma movimentação dentro de uma transação já aberta.
// Compartilhado com o registro de venda, compra e produção, que movimentam
// estoque nas suas próprias transações.
func ApplyMovement(products repository.ProductRepository, movs repository.StockMovementRepository, mov *entity.StockMovement) error {
	product, err := products.GetForUpdate(mov.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("produto %s: %w", mov.ProductID, domain.ErrNotFound)
	}

	newQty := product.Quantity
	if mov.Direction == entity.MovementEntrada {
		newQty = newQty.Add(mov.Quantity)
	} else {
		newQty = newQty.Sub(mov.Quantity)
	}
	if newQty.IsNegative() {
		return fmt.Errorf("produto %s: %w", product.Name, domain.ErrInsufficientStock)
	}

	if err := products.UpdateQuantity(product.ID, newQty); err != nil {
		return err
	}
	return movs.Create(mov)
}

// ListMovements devolve as movimentações mais recentes, paginadas.
func (uc *UseCase) ListMovements(limit, offset int) ([]*dto.MovementResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.movs.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// ListByProduct devolve o histórico de um produto.
func (uc *UseCase) ListByProduct(productID string, limit, offset int) ([]*dto.MovementResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.movs.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Direction: m.Direction,
		Reason:    m.Reason,
		ActorID:   m.ActorID,
		CreatedAt: m.CreatedAt,
	}
}
