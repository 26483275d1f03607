// Package finance implementa contas a pagar/receber: lançamentos avulsos,
// listagem por status e baixa.
package finance

import (
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

// UseCase caso de uso financeiro.
type UseCase struct {
	payables    repository.PayableRepository
	receivables repository.ReceivableRepository
	notifier    *events.Notifier
}

// NewUseCase constrói o caso de uso.
func NewUseCase(payables repository.PayableRepository, receivables repository.ReceivableRepository,
	notifier *events.Notifier) *UseCase {
	return &UseCase{payables: payables, receivables: receivables, notifier: notifier}
}

// CreatePayable lança uma conta a pagar avulsa (despesa sem compra/abate).
func (uc *UseCase) CreatePayable(in dto.CreatePayableRequest) (*dto.PayableResponse, error) {
	if in.Description == "" || in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("descrição e valor positivo obrigatórios: %w", domain.ErrInvalidInput)
	}
	p := &entity.Payable{
		ID:          uuid.New().String(),
		Description: in.Description,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Status:      entity.FinanceStatusPendente,
		SupplierID:  in.SupplierID,
		CreatedAt:   time.Now(),
	}
	if err := uc.payables.Create(p); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "payables", Action: "created", ID: p.ID})
	return toPayableResponse(p), nil
}

// CreateReceivable lança uma conta a receber avulsa.
func (uc *UseCase) CreateReceivable(in dto.CreateReceivableRequest) (*dto.ReceivableResponse, error) {
	if in.Description == "" || in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("descrição e valor positivo obrigatórios: %w", domain.ErrInvalidInput)
	}
	r := &entity.Receivable{
		ID:          uuid.New().String(),
		Description: in.Description,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Status:      entity.FinanceStatusPendente,
		CustomerID:  in.CustomerID,
		CreatedAt:   time.Now(),
	}
	if err := uc.receivables.Create(r); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "receivables", Action: "created", ID: r.ID})
	return toReceivableResponse(r), nil
}

// ListPayables lista contas a pagar; status vazio devolve todas.
func (uc *UseCase) ListPayables(status string, limit, offset int) ([]*dto.PayableResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.payables.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PayableResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPayableResponse(p))
	}
	return out, nil
}

// ListReceivables lista contas a receber; status vazio devolve todas.
func (uc *UseCase) ListReceivables(status string, limit, offset int) ([]*dto.ReceivableResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.receivables.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReceivableResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReceivableResponse(r))
	}
	return out, nil
}

// SettlePayable dá baixa numa conta a pagar. Baixar duas vezes é conflito.
func (uc *UseCase) SettlePayable(id string) (*dto.PayableResponse, error) {
	p, err := uc.payables.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("conta a pagar %s: %w", id, domain.ErrNotFound)
	}
	if p.Status == entity.FinanceStatusPago {
		return nil, fmt.Errorf("conta %s já baixada: %w", id, domain.ErrConflict)
	}
	now := time.Now()
	if err := uc.payables.Settle(id, now); err != nil {
		return nil, err
	}
	p.Status = entity.FinanceStatusPago
	p.PaidAt = &now
	uc.notifier.Publish(events.Change{Entity: "payables", Action: "updated", ID: id})
	return toPayableResponse(p), nil
}

// SettleReceivable dá baixa numa conta a receber.
func (uc *UseCase) SettleReceivable(id string) (*dto.ReceivableResponse, error) {
	r, err := uc.receivables.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("conta a receber %s: %w", id, domain.ErrNotFound)
	}
	if r.Status == entity.FinanceStatusPago {
		return nil, fmt.Errorf("conta %s já baixada: %w", id, domain.ErrConflict)
	}
	now := time.Now()
	if err := uc.receivables.Settle(id, now); err != nil {
		return nil, err
	}
	r.Status = entity.FinanceStatusPago
	r.PaidAt = &now
	uc.notifier.Publish(events.Change{Entity: "receivables", Action: "updated", ID: id})
	return toReceivableResponse(r), nil
}

func toPayableResponse(p *entity.Payable) *dto.PayableResponse {
	return &dto.PayableResponse{
		ID:          p.ID,
		Description: p.Description,
		Amount:      p.Amount,
		DueDate:     p.DueDate,
		Status:      p.Status,
		PaidAt:      p.PaidAt,
		SupplierID:  p.SupplierID,
		PurchaseID:  p.PurchaseID,
		AbateID:     p.AbateID,
		CreatedAt:   p.CreatedAt,
	}
}

func toReceivableResponse(r *entity.Receivable) *dto.ReceivableResponse {
	return &dto.ReceivableResponse{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
		Status:      r.Status,
		PaidAt:      r.PaidAt,
		CustomerID:  r.CustomerID,
		SaleID:      r.SaleID,
		CreatedAt:   r.CreatedAt,
	}
}
