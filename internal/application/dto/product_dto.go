package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest cadastro de produto. Quantity inicia em zero e só muda
// via movimentações.
type CreateProductRequest struct {
	Name       string          `json:"nome"`
	Type       string          `json:"tipo"`
	CategoryID string          `json:"categoria_id"`
	UnitID     string          `json:"unidade_id"`
	Cost       decimal.Decimal `json:"custo"`
	Price      decimal.Decimal `json:"preco"`
	NCM        string          `json:"ncm"`
	CFOP       string          `json:"cfop"`
	CEST       string          `json:"cest"`
}

// UpdateProductRequest atualização parcial do cadastro (nunca de quantidade).
type UpdateProductRequest struct {
	Name       *string          `json:"nome"`
	Type       *string          `json:"tipo"`
	CategoryID *string          `json:"categoria_id"`
	UnitID     *string          `json:"unidade_id"`
	Cost       *decimal.Decimal `json:"custo"`
	Price      *decimal.Decimal `json:"preco"`
	NCM        *string          `json:"ncm"`
	CFOP       *string          `json:"cfop"`
	CEST       *string          `json:"cest"`
}

// ProductResponse representação de produto na API.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"nome"`
	Type       string          `json:"tipo"`
	CategoryID string          `json:"categoria_id"`
	UnitID     string          `json:"unidade_id"`
	Cost       decimal.Decimal `json:"custo"`
	Price      decimal.Decimal `json:"preco"`
	Quantity   decimal.Decimal `json:"quantidade"`
	NCM        string          `json:"ncm"`
	CFOP       string          `json:"cfop"`
	CEST       string          `json:"cest"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"criado_em"`
	UpdatedAt  time.Time       `json:"atualizado_em"`
}

// RegisterMovementRequest movimentação manual de estoque.
type RegisterMovementRequest struct {
	ProductID string          `json:"produto_id"`
	Quantity  decimal.Decimal `json:"quantidade"`
	Direction string          `json:"direcao"` // entrada | saida
	Reason    string          `json:"motivo"`
}

// MovementResponse representação de movimentação na API.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"produto_id"`
	Quantity  decimal.Decimal `json:"quantidade"`
	Direction string          `json:"direcao"`
	Reason    string          `json:"motivo"`
	ActorID   string          `json:"usuario_id"`
	CreatedAt time.Time       `json:"criado_em"`
}
