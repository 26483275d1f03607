package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direções de movimentação de estoque.
const (
	MovementEntrada = "entrada"
	MovementSaida   = "saida"
)

// StockMovement é o registro de auditoria de uma movimentação de estoque.
// Append-only: nunca é atualizado nem removido depois de criado.
type StockMovement struct {
	ID        string
	ProductID string
	Quantity  decimal.Decimal // magnitude, sempre positiva; o sinal vem de Direction
	Direction string          // entrada | saida
	Reason    string          // ex.: "Venda para <cliente> (venda <id>)"
	ActorID   string          // usuário que originou a operação
	CreatedAt time.Time
}
