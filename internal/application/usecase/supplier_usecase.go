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
	"github.com/gestorcampo/gestor-api/pkg/br"
	"github.com/gestorcampo/gestor-api/pkg/strutil"
)

// SupplierUseCase CRUD de fornecedores.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	notifier *events.Notifier
}

// NewSupplierUseCase constrói o caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, notifier *events.Notifier) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, notifier: notifier}
}

// Create cria um fornecedor.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}
	doc := br.Digits(in.Document)
	if doc != "" && br.Validate(doc) != nil {
		return nil, fmt.Errorf("CPF/CNPJ inválido: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  doc,
		Email:     in.Email,
		Phone:     in.Phone,
		Municipio: in.Municipio,
		UF:        in.UF,
		Status:    entity.StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "suppliers", Action: "created", ID: supplier.ID})
	return toSupplierResponse(supplier), nil
}

// GetByID devolve um fornecedor, ou nil se não existir.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

// Update atualização parcial.
func (uc *SupplierUseCase) Update(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("nome não pode ficar vazio: %w", domain.ErrInvalidInput)
		}
		supplier.Name = *in.Name
	}
	if in.Document != nil {
		doc := br.Digits(*in.Document)
		if doc != "" && br.Validate(doc) != nil {
			return nil, fmt.Errorf("CPF/CNPJ inválido: %w", domain.ErrInvalidInput)
		}
		supplier.Document = doc
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Municipio != nil {
		supplier.Municipio = *in.Municipio
	}
	if in.UF != nil {
		supplier.UF = *in.UF
	}

	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "suppliers", Action: "updated", ID: supplier.ID})
	return toSupplierResponse(supplier), nil
}

// List devolve os fornecedores com filtro de busca insensível a acentos.
func (uc *SupplierUseCase) List(includeInactive bool, search string) ([]*dto.SupplierResponse, error) {
	list, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		if search != "" && !strutil.ContainsFold(s.Name, search) {
			continue
		}
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// SetStatus troca o status ativo/inativo.
func (uc *SupplierUseCase) SetStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetStatus(id, status); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "suppliers", Action: "status_changed", ID: id})
	return nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Document:  br.Format(s.Document),
		Email:     s.Email,
		Phone:     s.Phone,
		Municipio: s.Municipio,
		UF:        s.UF,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
