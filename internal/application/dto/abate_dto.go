package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterAbateRequest registro de lote de abate. Gera a conta a pagar ao
// fornecedor na mesma transação.
type RegisterAbateRequest struct {
	SupplierID  string          `json:"fornecedor_id"`
	Date        time.Time       `json:"data"`
	AnimalCount int             `json:"qtd_animais"`
	LiveWeight  decimal.Decimal `json:"peso_vivo"`
	TotalCost   decimal.Decimal `json:"custo_total"`
	Condition   string          `json:"condicao"`
	DueDate     *time.Time      `json:"vencimento"`
}

// AbateResponse representação de lote de abate.
type AbateResponse struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"fornecedor_id"`
	Date        time.Time       `json:"data"`
	AnimalCount int             `json:"qtd_animais"`
	LiveWeight  decimal.Decimal `json:"peso_vivo"`
	TotalCost   decimal.Decimal `json:"custo_total"`
	Condition   string          `json:"condicao"`
	DueDate     *time.Time      `json:"vencimento,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"criado_em"`
	CreatedBy   string          `json:"criado_por"`
}

// ProducaoItemRequest produto e quantidade resultantes da produção.
type ProducaoItemRequest struct {
	ProductID string          `json:"produto_id"`
	Quantity  decimal.Decimal `json:"quantidade"`
}

// RegisterProducaoRequest conversão de um lote de abate em estoque.
type RegisterProducaoRequest struct {
	AbateID string                `json:"abate_id"`
	Items   []ProducaoItemRequest `json:"itens"`
}

// ProducaoItemResponse item da produção na resposta.
type ProducaoItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"produto_id"`
	Quantity  decimal.Decimal `json:"quantidade"`
}

// ProducaoResponse representação de produção.
type ProducaoResponse struct {
	ID        string                 `json:"id"`
	AbateID   string                 `json:"abate_id"`
	Items     []ProducaoItemResponse `json:"itens,omitempty"`
	CreatedAt time.Time              `json:"criado_em"`
	CreatedBy string                 `json:"criado_por"`
}
