package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest linha da venda no pedido de registro.
type SaleItemRequest struct {
	ProductID string          `json:"produto_id"`
	Quantity  decimal.Decimal `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
}

// RegisterSaleRequest registro de venda. DueDate é obrigatório quando a prazo.
type RegisterSaleRequest struct {
	CustomerID string            `json:"cliente_id"`
	Condition  string            `json:"condicao"` // a_vista | a_prazo
	Discount   decimal.Decimal   `json:"desconto"`
	DueDate    *time.Time        `json:"vencimento"`
	Items      []SaleItemRequest `json:"itens"`
}

// SaleItemResponse linha da venda na resposta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"produto_id"`
	Quantity  decimal.Decimal `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
	UnitCost  decimal.Decimal `json:"custo_unitario"`
}

// SaleNFeResponse sub-registro fiscal da venda na resposta.
type SaleNFeResponse struct {
	Status    string     `json:"status"`
	Ref       string     `json:"ref,omitempty"`
	Chave     string     `json:"chave,omitempty"`
	Protocolo string     `json:"protocolo,omitempty"`
	DANFEURL  string     `json:"url_danfe,omitempty"`
	XMLURL    string     `json:"url_xml,omitempty"`
	Mensagem  string     `json:"mensagem,omitempty"`
	UpdatedAt *time.Time `json:"atualizado_em,omitempty"`
}

// SaleResponse representação de venda.
type SaleResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"cliente_id"`
	Condition  string             `json:"condicao"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Discount   decimal.Decimal    `json:"desconto"`
	Total      decimal.Decimal    `json:"total"`
	Status     string             `json:"status"`
	DueDate    *time.Time         `json:"vencimento,omitempty"`
	NFe        SaleNFeResponse    `json:"nfe"`
	Items      []SaleItemResponse `json:"itens,omitempty"`
	CreatedAt  time.Time          `json:"criado_em"`
	CreatedBy  string             `json:"criado_por"`
}

// PurchaseItemRequest linha da compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"produto_id"`
	Quantity  decimal.Decimal `json:"quantidade"`
	UnitCost  decimal.Decimal `json:"custo_unitario"`
}

// RegisterPurchaseRequest registro de compra de fornecedor.
type RegisterPurchaseRequest struct {
	SupplierID string                `json:"fornecedor_id"`
	Condition  string                `json:"condicao"`
	DueDate    *time.Time            `json:"vencimento"`
	Items      []PurchaseItemRequest `json:"itens"`
}

// PurchaseItemResponse linha da compra na resposta.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"produto_id"`
	Quantity  decimal.Decimal `json:"quantidade"`
	UnitCost  decimal.Decimal `json:"custo_unitario"`
}

// PurchaseResponse representação de compra.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	SupplierID string                 `json:"fornecedor_id"`
	Condition  string                 `json:"condicao"`
	Total      decimal.Decimal        `json:"total"`
	Status     string                 `json:"status"`
	DueDate    *time.Time             `json:"vencimento,omitempty"`
	Items      []PurchaseItemResponse `json:"itens,omitempty"`
	CreatedAt  time.Time              `json:"criado_em"`
	CreatedBy  string                 `json:"criado_por"`
}
