// Package sales implementa o registro transacional de venda: checagem de
// estoque, gravação da venda e das baixas, e conta a receber quando a prazo.
package sales

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

// UseCase caso de uso do registro e consulta de vendas.
type UseCase struct {
	tx        SaleTxRunner
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	notifier  *events.Notifier
}

// NewUseCase constrói o caso de uso. sales e customers são repositórios fora
// de transação, usados nas leituras.
func NewUseCase(tx SaleTxRunner, sales repository.SaleRepository, customers repository.CustomerRepository, notifier *events.Notifier) *UseCase {
	return &UseCase{tx: tx, sales: sales, customers: customers, notifier: notifier}
}

// RegisterSale registra a venda atomicamente: valida o estoque de todos os
// itens, grava a venda, baixa o estoque com auditoria e, quando a prazo, cria
// a conta a receber. Se qualquer passo falhar, nenhuma escrita fica visível.
func (uc *UseCase) RegisterSale(ctx context.Context, actorID string, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("venda sem itens: %w", domain.ErrInvalidInput)
	}
	if in.Condition != entity.PaymentAVista && in.Condition != entity.PaymentAPrazo {
		return nil, fmt.Errorf("condição de pagamento inválida: %w", domain.ErrInvalidInput)
	}
	if in.Condition == entity.PaymentAPrazo && in.DueDate == nil {
		return nil, fmt.Errorf("venda a prazo sem vencimento: %w", domain.ErrInvalidInput)
	}
	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("desconto negativo: %w", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity.LessThanOrEqual(decimal.Zero) || item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("item inválido: %w", domain.ErrInvalidInput)
		}
	}

	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
	}

	subtotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(item.Quantity))
	}
	total := subtotal.Sub(in.Discount)
	if total.IsNegative() {
		return nil, fmt.Errorf("desconto maior que o subtotal: %w", domain.ErrInvalidInput)
	}

	status := entity.SaleStatusPago
	if in.Condition == entity.PaymentAPrazo {
		status = entity.SaleStatusPendente
	}
	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Condition:  in.Condition,
		Subtotal:   subtotal,
		Discount:   in.Discount,
		Total:      total,
		Status:     status,
		DueDate:    in.DueDate,
		NFe:        entity.SaleNFe{Status: entity.NFeStatusNaoEmitida},
		CreatedAt:  now,
		CreatedBy:  actorID,
	}

	var items []*entity.SaleItem

	err = uc.tx.RunSale(ctx, func(
		products repository.ProductRepository,
		movs repository.StockMovementRepository,
		salesRepo repository.SaleRepository,
		receivables repository.ReceivableRepository,
	) error {
		// Checagem de estoque de todos os itens antes de qualquer escrita,
		// nomeando o primeiro produto que falhar.
		type line struct {
			product  *entity.Product
			quantity decimal.Decimal
			price    decimal.Decimal
		}
		lines := make([]line, 0, len(in.Items))
		for _, item := range in.Items {
			product, err := products.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("produto %s: %w", item.ProductID, domain.ErrNotFound)
			}
			if product.Quantity.LessThan(item.Quantity) {
				return fmt.Errorf("produto %s: %w", product.Name, domain.ErrInsufficientStock)
			}
			lines = append(lines, line{product: product, quantity: item.Quantity, price: item.UnitPrice})
		}

		if err := salesRepo.Create(sale); err != nil {
			return err
		}

		for _, ln := range lines {
			item := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: ln.product.ID,
				Quantity:  ln.quantity,
				UnitPrice: ln.price,
				UnitCost:  ln.product.Cost,
			}
			if err := salesRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)

			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: ln.product.ID,
				Quantity:  ln.quantity,
				Direction: entity.MovementSaida,
				Reason:    fmt.Sprintf("Venda para %s (venda %s)", customer.Name, sale.ID),
				ActorID:   actorID,
				CreatedAt: now,
			}
			if err := inventory.ApplyMovement(products, movs, mov); err != nil {
				return err
			}
		}

		if in.Condition == entity.PaymentAPrazo {
			receivable := &entity.Receivable{
				ID:          uuid.New().String(),
				Description: fmt.Sprintf("Venda a prazo — %s", customer.Name),
				Amount:      total,
				DueDate:     *in.DueDate,
				Status:      entity.FinanceStatusPendente,
				CustomerID:  customer.ID,
				SaleID:      sale.ID,
				CreatedAt:   now,
			}
			if err := receivables.Create(receivable); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(events.Change{Entity: "sales", Action: "created", ID: sale.ID})
	return toSaleResponse(sale, items), nil
}

// GetByID devolve a venda com os itens.
func (uc *UseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	items, err := uc.sales.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// List devolve as vendas mais recentes, paginadas, sem itens.
func (uc *UseCase) List(limit, offset int) ([]*dto.SaleResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.sales.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, nil))
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		Condition:  s.Condition,
		Subtotal:   s.Subtotal,
		Discount:   s.Discount,
		Total:      s.Total,
		Status:     s.Status,
		DueDate:    s.DueDate,
		NFe: dto.SaleNFeResponse{
			Status:    s.NFe.Status,
			Ref:       s.NFe.Ref,
			Chave:     s.NFe.Chave,
			Protocolo: s.NFe.Protocolo,
			DANFEURL:  s.NFe.DANFEURL,
			XMLURL:    s.NFe.XMLURL,
			Mensagem:  s.NFe.Mensagem,
			UpdatedAt: s.NFe.UpdatedAt,
		},
		CreatedAt: s.CreatedAt,
		CreatedBy: s.CreatedBy,
	}
	for _, i := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        i.ID,
			ProductID: i.ProductID,
			Quantity:  i.Quantity,
			UnitPrice: i.UnitPrice,
			UnitCost:  i.UnitCost,
		})
	}
	return resp
}
