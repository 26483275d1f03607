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

// CustomerUseCase CRUD de clientes. O documento é persistido só com dígitos e
// devolvido mascarado.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	notifier *events.Notifier
}

// NewCustomerUseCase constrói o caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, notifier *events.Notifier) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, notifier: notifier}
}

// Create cria um cliente. Documento, quando presente, precisa ser CPF/CNPJ válido.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}
	doc := br.Digits(in.Document)
	if doc != "" && br.Validate(doc) != nil {
		return nil, fmt.Errorf("CPF/CNPJ inválido: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Document:        doc,
		IE:              in.IE,
		Email:           in.Email,
		Phone:           in.Phone,
		Logradouro:      in.Logradouro,
		Numero:          in.Numero,
		Bairro:          in.Bairro,
		Municipio:       in.Municipio,
		UF:              in.UF,
		CEP:             in.CEP,
		CodigoMunicipio: in.CodigoMunicipio,
		Status:          entity.StatusAtivo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "customers", Action: "created", ID: customer.ID})
	return toCustomerResponse(customer), nil
}

// GetByID devolve um cliente, ou nil se não existir.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// Update atualização parcial do cadastro.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("nome não pode ficar vazio: %w", domain.ErrInvalidInput)
		}
		customer.Name = *in.Name
	}
	if in.Document != nil {
		doc := br.Digits(*in.Document)
		if doc != "" && br.Validate(doc) != nil {
			return nil, fmt.Errorf("CPF/CNPJ inválido: %w", domain.ErrInvalidInput)
		}
		customer.Document = doc
	}
	if in.IE != nil {
		customer.IE = *in.IE
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Logradouro != nil {
		customer.Logradouro = *in.Logradouro
	}
	if in.Numero != nil {
		customer.Numero = *in.Numero
	}
	if in.Bairro != nil {
		customer.Bairro = *in.Bairro
	}
	if in.Municipio != nil {
		customer.Municipio = *in.Municipio
	}
	if in.UF != nil {
		customer.UF = *in.UF
	}
	if in.CEP != nil {
		customer.CEP = *in.CEP
	}
	if in.CodigoMunicipio != nil {
		customer.CodigoMunicipio = *in.CodigoMunicipio
	}

	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "customers", Action: "updated", ID: customer.ID})
	return toCustomerResponse(customer), nil
}

// List devolve os clientes com filtro de busca insensível a acentos.
func (uc *CustomerUseCase) List(includeInactive bool, search string) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		if search != "" && !strutil.ContainsFold(c.Name, search) {
			continue
		}
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// SetStatus troca o status ativo/inativo.
func (uc *CustomerUseCase) SetStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetStatus(id, status); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "customers", Action: "status_changed", ID: id})
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Document:        br.Format(c.Document),
		IE:              c.IE,
		Email:           c.Email,
		Phone:           c.Phone,
		Logradouro:      c.Logradouro,
		Numero:          c.Numero,
		Bairro:          c.Bairro,
		Municipio:       c.Municipio,
		UF:              c.UF,
		CEP:             c.CEP,
		CodigoMunicipio: c.CodigoMunicipio,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
