// Package purchases implementa o registro transacional de compra: entrada de
// estoque, atualização de custo e conta a pagar quando a prazo.
package purchases

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

// UseCase caso de uso do registro e consulta de compras.
type UseCase struct {
	tx        TxRunner
	purchases repository.PurchaseRepository
	suppliers repository.SupplierRepository
	notifier  *events.Notifier
}

// NewUseCase constrói o caso de uso.
func NewUseCase(tx TxRunner, purchases repository.PurchaseRepository, suppliers repository.SupplierRepository, notifier *events.Notifier) *UseCase {
	return &UseCase{tx: tx, purchases: purchases, suppliers: suppliers, notifier: notifier}
}

// RegisterPurchase registra a compra atomicamente: grava a compra, dá entrada
// no estoque de cada item (atualizando o custo do produto) e, quando a prazo,
// cria a conta a pagar ao fornecedor.
func (uc *UseCase) RegisterPurchase(ctx context.Context, actorID string, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("compra sem itens: %w", domain.ErrInvalidInput)
	}
	if in.Condition != entity.PaymentAVista && in.Condition != entity.PaymentAPrazo {
		return nil, fmt.Errorf("condição de pagamento inválida: %w", domain.ErrInvalidInput)
	}
	if in.Condition == entity.PaymentAPrazo && in.DueDate == nil {
		return nil, fmt.Errorf("compra a prazo sem vencimento: %w", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity.LessThanOrEqual(decimal.Zero) || item.UnitCost.IsNegative() {
			return nil, fmt.Errorf("item inválido: %w", domain.ErrInvalidInput)
		}
	}

	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("fornecedor %s: %w", in.SupplierID, domain.ErrNotFound)
	}

	total := decimal.Zero
	for _, item := range in.Items {
		total = total.Add(item.UnitCost.Mul(item.Quantity))
	}

	status := entity.SaleStatusPago
	if in.Condition == entity.PaymentAPrazo {
		status = entity.SaleStatusPendente
	}
	now := time.Now()
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Condition:  in.Condition,
		Total:      total,
		Status:     status,
		DueDate:    in.DueDate,
		CreatedAt:  now,
		CreatedBy:  actorID,
	}

	var items []*entity.PurchaseItem

	err = uc.tx.RunPurchase(ctx, func(
		products repository.ProductRepository,
		movs repository.StockMovementRepository,
		purchasesRepo repository.PurchaseRepository,
		payables repository.PayableRepository,
	) error {
		if err := purchasesRepo.Create(purchase); err != nil {
			return err
		}
		for _, line := range in.Items {
			product, err := products.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("produto %s: %w", line.ProductID, domain.ErrNotFound)
			}

			item := &entity.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: purchase.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitCost:   line.UnitCost,
			}
			if err := purchasesRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)

			// O custo do cadastro passa a ser o da última compra.
			product.Cost = line.UnitCost
			product.UpdatedAt = now
			if err := products.Update(product); err != nil {
				return err
			}

			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Direction: entity.MovementEntrada,
				Reason:    fmt.Sprintf("Compra de %s (compra %s)", supplier.Name, purchase.ID),
				ActorID:   actorID,
				CreatedAt: now,
			}
			if err := inventory.ApplyMovement(products, movs, mov); err != nil {
				return err
			}
		}

		if in.Condition == entity.PaymentAPrazo {
			payable := &entity.Payable{
				ID:          uuid.New().String(),
				Description: fmt.Sprintf("Compra a prazo — %s", supplier.Name),
				Amount:      total,
				DueDate:     *in.DueDate,
				Status:      entity.FinanceStatusPendente,
				SupplierID:  supplier.ID,
				PurchaseID:  purchase.ID,
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

	uc.notifier.Publish(events.Change{Entity: "purchases", Action: "created", ID: purchase.ID})
	return toPurchaseResponse(purchase, items), nil
}

// GetByID devolve a compra com os itens.
func (uc *UseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchases.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, nil
	}
	items, err := uc.purchases.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, items), nil
}

// List devolve as compras mais recentes, paginadas.
func (uc *UseCase) List(limit, offset int) ([]*dto.PurchaseResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.purchases.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p, nil))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		Condition:  p.Condition,
		Total:      p.Total,
		Status:     p.Status,
		DueDate:    p.DueDate,
		CreatedAt:  p.CreatedAt,
		CreatedBy:  p.CreatedBy,
	}
	for _, i := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        i.ID,
			ProductID: i.ProductID,
			Quantity:  i.Quantity,
			UnitCost:  i.UnitCost,
		})
	}
	return resp
}
