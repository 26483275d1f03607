package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
	"github.com/gestorcampo/gestor-api/pkg/strutil"
)

// BankAccountUseCase CRUD de contas bancárias.
type BankAccountUseCase struct {
	repo     repository.BankAccountRepository
	notifier *events.Notifier
}

// NewBankAccountUseCase constrói o caso de uso.
func NewBankAccountUseCase(repo repository.BankAccountRepository, notifier *events.Notifier) *BankAccountUseCase {
	return &BankAccountUseCase{repo: repo, notifier: notifier}
}

// Create cria uma conta bancária.
func (uc *BankAccountUseCase) Create(in dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	acc := &entity.BankAccount{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Bank:      in.Bank,
		Agency:    in.Agency,
		Number:    in.Number,
		Balance:   in.Balance,
		Status:    entity.StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(acc); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "bank_accounts", Action: "created", ID: acc.ID})
	return toBankAccountResponse(acc), nil
}

// GetByID devolve uma conta, ou nil se não existir.
func (uc *BankAccountUseCase) GetByID(id string) (*dto.BankAccountResponse, error) {
	acc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, nil
	}
	return toBankAccountResponse(acc), nil
}

// Update atualização parcial.
func (uc *BankAccountUseCase) Update(id string, in dto.UpdateBankAccountRequest) (*dto.BankAccountResponse, error) {
	acc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("nome não pode ficar vazio: %w", domain.ErrInvalidInput)
		}
		acc.Name = *in.Name
	}
	if in.Bank != nil {
		acc.Bank = *in.Bank
	}
	if in.Agency != nil {
		acc.Agency = *in.Agency
	}
	if in.Number != nil {
		acc.Number = *in.Number
	}
	if in.Balance != nil {
		acc.Balance = *in.Balance
	}

	acc.UpdatedAt = time.Now()
	if err := uc.repo.Update(acc); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "bank_accounts", Action: "updated", ID: acc.ID})
	return toBankAccountResponse(acc), nil
}

// List devolve as contas bancárias.
func (uc *BankAccountUseCase) List(includeInactive bool, search string) ([]*dto.BankAccountResponse, error) {
	list, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BankAccountResponse, 0, len(list))
	for _, a := range list {
		if search != "" && !strutil.ContainsFold(a.Name, search) && !strutil.ContainsFold(a.Bank, search) {
			continue
		}
		out = append(out, toBankAccountResponse(a))
	}
	return out, nil
}

// SetStatus troca o status ativo/inativo.
func (uc *BankAccountUseCase) SetStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	acc, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if acc == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetStatus(id, status); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "bank_accounts", Action: "status_changed", ID: id})
	return nil
}

func toBankAccountResponse(a *entity.BankAccount) *dto.BankAccountResponse {
	return &dto.BankAccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bank:      a.Bank,
		Agency:    a.Agency,
		Number:    a.Number,
		Balance:   a.Balance,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
