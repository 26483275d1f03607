// Package abate implementa o fluxo abate → produção: o lote de abate gera a
// conta a pagar ao fornecedor, e a produção converte o lote em entradas de
// estoque, tudo em transações atômicas.
package abate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/application/inventory"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// UseCase caso de uso do fluxo abate/produção.
type UseCase struct {
	tx        AbateTxRunner
	abates    repository.AbateRepository
	producoes repository.ProducaoRepository
	suppliers repository.SupplierRepository
	notifier  *events.Notifier
}

// NewUseCase constrói o caso de uso.
func NewUseCase(tx AbateTxRunner, abates repository.AbateRepository, producoes repository.ProducaoRepository,
	suppliers repository.SupplierRepository, notifier *events.Notifier) *UseCase {
	return &UseCase{tx: tx, abates: abates, producoes: producoes, suppliers: suppliers, notifier: notifier}
}

// RegisterAbate registra o lote de abate e, quando a prazo, a conta a pagar ao
// fornecedor, na mesma transação.
func (uc *UseCase) RegisterAbate(ctx context.Context, actorID string, in dto.RegisterAbateRequest) (*dto.AbateResponse, error) {
	if in.AnimalCount <= 0 || in.LiveWeight.LessThanOrEqual(decimal.Zero) || in.TotalCost.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("dados do lote inválidos: %w", domain.ErrInvalidInput)
	}
	if in.Condition != entity.PaymentAVista && in.Condition != entity.PaymentAPrazo {
		return nil, fmt.Errorf("condição de pagamento inválida: %w", domain.ErrInvalidInput)
	}
	if in.Condition == entity.PaymentAPrazo && in.DueDate == nil {
		return nil, fmt.Errorf("abate a prazo sem vencimento: %w", domain.ErrInvalidInput)
	}

	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("fornecedor %s: %w", in.SupplierID, domain.ErrNotFound)
	}

	now := time.Now()
	batch := &entity.Abate{
		ID:          uuid.New().String(),
		SupplierID:  in.SupplierID,
		Date:        in.Date,
		AnimalCount: in.AnimalCount,
		LiveWeight:  in.LiveWeight,
		TotalCost:   in.TotalCost,
		Condition:   in.Condition,
		DueDate:     in.DueDate,
		Status:      entity.AbateStatusAberto,
		CreatedAt:   now,
		CreatedBy:   actorID,
	}

	err = uc.tx.RunAbate(ctx, func(
		abates repository.AbateRepository,
		_ repository.ProducaoRepository,
		payables repository.PayableRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		if err := abates.Create(batch); err != nil {
			return err
		}
		if in.Condition == entity.PaymentAPrazo {
			payable := &entity.Payable{
				ID:          uuid.New().String(),
				Description: fmt.Sprintf("Abate a prazo — %s", supplier.Name),
				Amount:      in.TotalCost,
				DueDate:     *in.DueDate,
				Status:      entity.FinanceStatusPendente,
				SupplierID:  supplier.ID,
				AbateID:     batch.ID,
				CreatedAt:   now,
			}
			if err := payables.Create(payable); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(events.Change{Entity: "abates", Action: "created", ID: batch.ID})
	return toAbateResponse(batch), nil
}

// RegisterProducao converte um lote aberto em estoque: grava a produção, dá
// entrada em cada produto e marca o lote como processado, atomicamente. O lote
// é lido com bloqueio de linha para impedir duas produções concorrentes.
func (uc *UseCase) RegisterProducao(ctx context.Context, actorID string, in dto.RegisterProducaoRequest) (*dto.ProducaoResponse, error) {
	if in.AbateID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("produção sem lote ou sem itens: %w", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("item inválido: %w", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	producao := &entity.Producao{
		ID:        uuid.New().String(),
		AbateID:   in.AbateID,
		CreatedAt: now,
		CreatedBy: actorID,
	}
	var items []*entity.ProducaoItem

	err := uc.tx.RunAbate(ctx, func(
		abates repository.AbateRepository,
		producoes repository.ProducaoRepository,
		_ repository.PayableRepository,
		products repository.ProductRepository,
		movs repository.StockMovementRepository,
	) error {
		batch, err := abates.GetForUpdate(in.AbateID)
		if err != nil {
			return err
		}
		if batch == nil {
			return fmt.Errorf("abate %s: %w", in.AbateID, domain.ErrNotFound)
		}
		if batch.Status != entity.AbateStatusAberto {
			return fmt.Errorf("abate %s já processado: %w", in.AbateID, domain.ErrConflict)
		}

		if err := producoes.Create(producao); err != nil {
			return err
		}
		for _, line := range in.Items {
			item := &entity.ProducaoItem{
				ID:         uuid.New().String(),
				ProducaoID: producao.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
			}
			if err := producoes.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)

			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Direction: entity.MovementEntrada,
				Reason:    fmt.Sprintf("Produção do abate %s", batch.ID),
				ActorID:   actorID,
				CreatedAt: now,
			}
			if err := inventory.ApplyMovement(products, movs, mov); err != nil {
				return err
			}
		}
		return abates.SetStatus(batch.ID, entity.AbateStatusProcessado)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(events.Change{Entity: "abates", Action: "updated", ID: in.AbateID})
	return toProducaoResponse(producao, items), nil
}

// GetAbate devolve um lote por ID.
func (uc *UseCase) GetAbate(id string) (*dto.AbateResponse, error) {
	batch, err := uc.abates.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return toAbateResponse(batch), nil
}

// ListAbates devolve os lotes por data descendente, paginados.
func (uc *UseCase) ListAbates(limit, offset int) ([]*dto.AbateResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.abates.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AbateResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toAbateResponse(b))
	}
	return out, nil
}

// ListProducoes devolve as produções de um lote, com itens.
func (uc *UseCase) ListProducoes(abateID string) ([]*dto.ProducaoResponse, error) {
	list, err := uc.producoes.ListByAbate(abateID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProducaoResponse, 0, len(list))
	for _, p := range list {
		items, err := uc.producoes.GetItems(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toProducaoResponse(p, items))
	}
	return out, nil
}

func toAbateResponse(a *entity.Abate) *dto.AbateResponse {
	return &dto.AbateResponse{
		ID:          a.ID,
		SupplierID:  a.SupplierID,
		Date:        a.Date,
		AnimalCount: a.AnimalCount,
		LiveWeight:  a.LiveWeight,
		TotalCost:   a.TotalCost,
		Condition:   a.Condition,
		DueDate:     a.DueDate,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
	}
}

func toProducaoResponse(p *entity.Producao, items []*entity.ProducaoItem) *dto.ProducaoResponse {
	resp := &dto.ProducaoResponse{
		ID:        p.ID,
		AbateID:   p.AbateID,
		CreatedAt: p.CreatedAt,
		CreatedBy: p.CreatedBy,
	}
	for _, i := range items {
		resp.Items = append(resp.Items, dto.ProducaoItemResponse{
			ID:        i.ID,
			ProductID: i.ProductID,
			Quantity:  i.Quantity,
		})
	}
	return resp
}
