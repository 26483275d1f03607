package usecase

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
	"github.com/gestorcampo/gestor-api/pkg/strutil"
)

// ProductUseCase CRUD de produtos. Quantity nunca passa por aqui: só as
// transações de movimentação/venda a alteram.
type ProductUseCase struct {
	repo     repository.ProductRepository
	notifier *events.Notifier
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, notifier *events.Notifier) *ProductUseCase {
	return &ProductUseCase{repo: repo, notifier: notifier}
}

func validProductType(t string) bool {
	return t == entity.ProductTypeVenda || t == entity.ProductTypeUsoInterno || t == entity.ProductTypeMateriaPrima
}

// Create cria o produto com quantidade zero. Produto vendável exige NCM e CFOP.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}
	if !validProductType(in.Type) {
		return nil, fmt.Errorf("tipo de produto inválido: %w", domain.ErrInvalidInput)
	}
	if in.Type == entity.ProductTypeVenda && (in.NCM == "" || in.CFOP == "") {
		return nil, fmt.Errorf("produto de venda exige NCM e CFOP: %w", domain.ErrInvalidInput)
	}
	if in.Cost.IsNegative() || in.Price.IsNegative() {
		return nil, fmt.Errorf("custo e preço não podem ser negativos: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Type:       in.Type,
		CategoryID: in.CategoryID,
		UnitID:     in.UnitID,
		Cost:       in.Cost,
		Price:      in.Price,
		Quantity:   decimal.Zero,
		NCM:        in.NCM,
		CFOP:       in.CFOP,
		CEST:       in.CEST,
		Status:     entity.StatusAtivo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "products", Action: "created", ID: product.ID})
	return toProductResponse(product), nil
}

// GetByID devolve um produto, ou nil se não existir.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update atualização parcial do cadastro. Quantidade nunca é tocada aqui.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("nome não pode ficar vazio: %w", domain.ErrInvalidInput)
		}
		product.Name = *in.Name
	}
	if in.Type != nil {
		if !validProductType(*in.Type) {
			return nil, fmt.Errorf("tipo de produto inválido: %w", domain.ErrInvalidInput)
		}
		product.Type = *in.Type
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		product.UnitID = *in.UnitID
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, fmt.Errorf("custo negativo: %w", domain.ErrInvalidInput)
		}
		product.Cost = *in.Cost
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("preço negativo: %w", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.NCM != nil {
		product.NCM = *in.NCM
	}
	if in.CFOP != nil {
		product.CFOP = *in.CFOP
	}
	if in.CEST != nil {
		product.CEST = *in.CEST
	}
	if product.Type == entity.ProductTypeVenda && (product.NCM == "" || product.CFOP == "") {
		return nil, fmt.Errorf("produto de venda exige NCM e CFOP: %w", domain.ErrInvalidInput)
	}

	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "products", Action: "updated", ID: product.ID})
	return toProductResponse(product), nil
}

// List devolve os produtos (ativos primeiro, nome ascendente), com filtro de
// busca por nome insensível a acentos.
func (uc *ProductUseCase) List(includeInactive bool, search string) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if search != "" && !strutil.ContainsFold(p.Name, search) {
			continue
		}
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// SetStatus troca o status ativo/inativo (nunca há exclusão física).
func (uc *ProductUseCase) SetStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetStatus(id, status); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "products", Action: "status_changed", ID: id})
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Type:       p.Type,
		CategoryID: p.CategoryID,
		UnitID:     p.UnitID,
		Cost:       p.Cost,
		Price:      p.Price,
		Quantity:   p.Quantity,
		NCM:        p.NCM,
		CFOP:       p.CFOP,
		CEST:       p.CEST,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
