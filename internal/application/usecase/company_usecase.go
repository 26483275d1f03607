package usecase

import (
	"fmt"
	"time"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
	"github.com/gestorcampo/gestor-api/pkg/br"
)

// CompanyUseCase cadastro singleton da empresa emissora.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	notifier *events.Notifier
}

// NewCompanyUseCase constrói o caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, notifier *events.Notifier) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, notifier: notifier}
}

// Get devolve o cadastro da empresa, ou nil quando ainda não preenchido.
func (uc *CompanyUseCase) Get() (*dto.CompanyResponse, error) {
	company, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return toCompanyResponse(company), nil
}

// Save grava (cria ou substitui) o cadastro da empresa. O CNPJ é
// normalizado para dígitos antes da persistência.
func (uc *CompanyUseCase) Save(in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if in.RazaoSocial == "" {
		return nil, fmt.Errorf("razão social obrigatória: %w", domain.ErrInvalidInput)
	}
	cnpj := br.Digits(in.CNPJ)
	if len(cnpj) != 14 || br.Validate(cnpj) != nil {
		return nil, fmt.Errorf("CNPJ inválido: %w", domain.ErrInvalidInput)
	}
	if in.RegimeTributario != "1" && in.RegimeTributario != "3" {
		return nil, fmt.Errorf("regime_tributario deve ser 1 ou 3: %w", domain.ErrInvalidInput)
	}

	company := &entity.Company{
		ID:               "company",
		RazaoSocial:      in.RazaoSocial,
		NomeFantasia:     in.NomeFantasia,
		CNPJ:             cnpj,
		IE:               in.IE,
		RegimeTributario: in.RegimeTributario,
		Logradouro:       in.Logradouro,
		Numero:           in.Numero,
		Bairro:           in.Bairro,
		Municipio:        in.Municipio,
		UF:               in.UF,
		CEP:              in.CEP,
		CodigoMunicipio:  in.CodigoMunicipio,
		Email:            in.Email,
		Phone:            in.Phone,
		UpdatedAt:        time.Now(),
	}
	if err := uc.repo.Upsert(company); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "company", Action: "updated", ID: company.ID})
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		RazaoSocial:      c.RazaoSocial,
		NomeFantasia:     c.NomeFantasia,
		CNPJ:             br.Format(c.CNPJ),
		IE:               c.IE,
		RegimeTributario: c.RegimeTributario,
		Logradouro:       c.Logradouro,
		Numero:           c.Numero,
		Bairro:           c.Bairro,
		Municipio:        c.Municipio,
		UF:               c.UF,
		CEP:              c.CEP,
		CodigoMunicipio:  c.CodigoMunicipio,
		Email:            c.Email,
		Phone:            c.Phone,
		UpdatedAt:        c.UpdatedAt,
	}
}
