package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de produto.
const (
	ProductTypeVenda        = "venda"         // produto vendável (exige códigos fiscais)
	ProductTypeUsoInterno   = "uso_interno"   // insumo de uso interno
	ProductTypeMateriaPrima = "materia_prima" // matéria-prima (entrada via abate/produção)
)

// Product representa um produto do estoque.
// Quantity só é alterada pelas transações de movimentação e de venda (nunca por
// update parcial direto); Cost e Price são mantidos pelo cadastro.
type Product struct {
	ID         string
	Name       string
	Type       string // venda, uso_interno, materia_prima
	CategoryID string
	UnitID     string
	Cost       decimal.Decimal // custo unitário
	Price      decimal.Decimal // preço de venda
	Quantity   decimal.Decimal // quantidade em estoque
	NCM        string          // códigos fiscais, obrigatórios quando Type == venda
	CFOP       string
	CEST       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Sellable informa se o produto pode compor uma venda com emissão de NF-e.
func (p *Product) Sellable() bool {
	return p.Type == ProductTypeVenda && p.Status == StatusAtivo
}
