package sales

import (
	"fmt"

	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// ReciboLine linha de item do recibo já resolvida para exibição.
type ReciboLine struct {
	ProductName string
	Quantity    string
	UnitPrice   string
	Subtotal    string
}

// ReciboGenerator porta do gerador de recibo em PDF.
type ReciboGenerator interface {
	Generate(sale *entity.Sale, company *entity.Company, customer *entity.Customer, lines []ReciboLine) ([]byte, error)
}

// ReciboUseCase monta e gera o recibo de venda em PDF.
type ReciboUseCase struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	company   repository.CompanyRepository
	gen       ReciboGenerator
}

// NewReciboUseCase constrói o caso de uso.
func NewReciboUseCase(
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	company repository.CompanyRepository,
	gen ReciboGenerator,
) *ReciboUseCase {
	return &ReciboUseCase{sales: sales, customers: customers, products: products, company: company, gen: gen}
}

// Generate devolve os bytes do PDF do recibo da venda.
func (uc *ReciboUseCase) Generate(saleID string) ([]byte, error) {
	sale, err := uc.sales.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.sales.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente da venda não encontrado: %w", domain.ErrNotFound)
	}
	company, err := uc.company.Get()
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("cadastro da empresa não preenchido: %w", domain.ErrConflict)
	}

	lines := make([]ReciboLine, 0, len(items))
	for _, it := range items {
		name := it.ProductID
		if p, err := uc.products.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, ReciboLine{
			ProductName: name,
			Quantity:    it.Quantity.StringFixed(3),
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Subtotal:    it.Quantity.Mul(it.UnitPrice).StringFixed(2),
		})
	}

	return uc.gen.Generate(sale, company, customer, lines)
}
