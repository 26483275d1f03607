package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condições de pagamento.
const (
	PaymentAVista = "a_vista"
	PaymentAPrazo = "a_prazo"
)

// Status da venda.
const (
	SaleStatusPago     = "pago"
	SaleStatusPendente = "pendente"
)

// Status da NF-e associada à venda (vocabulário do provedor, estilo Focus NFe).
// Máquina de estados: nao_emitida → processando_autorizacao → autorizado |
// erro_autorizacao; autorizado → cancelado (exige justificativa ≥ 15 caracteres);
// qualquer estado pode ir a "erro" por falha de comunicação, recuperável por
// nova consulta ou reemissão.
const (
	NFeStatusNaoEmitida  = "nao_emitida"
	NFeStatusProcessando = "processando_autorizacao"
	NFeStatusAutorizado  = "autorizado"
	NFeStatusRejeitado   = "erro_autorizacao"
	NFeStatusCancelado   = "cancelado"
	NFeStatusErro        = "erro"
)

// Sale é a cabeça de uma venda. Criada atomicamente com as baixas de estoque
// e, quando a prazo, com a conta a receber correspondente.
type Sale struct {
	ID         string
	CustomerID string
	Condition  string // a_vista | a_prazo
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal // Subtotal - Discount
	Status     string          // pago | pendente, derivado da condição
	DueDate    *time.Time      // vencimento quando a prazo
	NFe        SaleNFe         // sub-registro fiscal
	CreatedAt  time.Time
	CreatedBy  string
}

// SaleItem linha da venda. UnitCost congela o custo do produto no momento da venda.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
}

// SaleNFe sub-registro fiscal da venda, preenchido pelo proxy de NF-e.
type SaleNFe struct {
	Status    string // ver constantes NFeStatus*
	Ref       string // referência de idempotência junto ao provedor
	Chave     string // chave de acesso da NF-e (44 dígitos)
	Protocolo string
	DANFEURL  string
	XMLURL    string
	Mensagem  string // mensagem SEFAZ ou erro normalizado
	UpdatedAt *time.Time
}
