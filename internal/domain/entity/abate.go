package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do lote de abate.
const (
	AbateStatusAberto     = "aberto"     // aguardando produção
	AbateStatusProcessado = "processado" // já convertido em estoque
)

// Abate lote de abate: compra de animais de um fornecedor, a montante da
// produção. Gera a conta a pagar ao fornecedor na mesma transação.
type Abate struct {
	ID          string
	SupplierID  string
	Date        time.Time
	AnimalCount int
	LiveWeight  decimal.Decimal // peso vivo total (kg)
	TotalCost   decimal.Decimal
	Condition   string     // a_vista | a_prazo
	DueDate     *time.Time // vencimento quando a prazo
	Status      string     // aberto | processado
	CreatedAt   time.Time
	CreatedBy   string
}

// Producao conversão de um lote de abate em estoque de produtos.
type Producao struct {
	ID        string
	AbateID   string
	CreatedAt time.Time
	CreatedBy string
}

// ProducaoItem produto e quantidade resultantes da produção.
type ProducaoItem struct {
	ID         string
	ProducaoID string
	ProductID  string
	Quantity   decimal.Decimal
}
