// Package pdf gera o recibo de venda em PDF (Maroto v2).
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razão Social + CNPJ  │  N° Venda + Data             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMITENTE: Endereço / Tel / Email                            │
//	│  CLIENTE: Nome + CPF/CNPJ + contato                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Produto | Preço Unit. | Subtotal              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Subtotal / Desconto / TOTAL                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: chave de acesso da NF-e (quando autorizada)         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gestorcampo/gestor-api/internal/application/sales"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/pkg/br"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	corPrimaria = &props.Color{Red: 27, Green: 94, Blue: 32}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReciboGenerator implementa sales.ReciboGenerator usando Maroto v2.
type ReciboGenerator struct{}

// NewReciboGenerator constrói o gerador.
func NewReciboGenerator() *ReciboGenerator { return &ReciboGenerator{} }

// Generate gera o PDF do recibo e devolve seus bytes.
func (g *ReciboGenerator) Generate(
	sale *entity.Sale,
	company *entity.Company,
	customer *entity.Customer,
	lines []sales.ReciboLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de Venda", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(cabecalhoRow(sale, company))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))
	m.AddRows(emitenteRow(company))
	m.AddRows(clienteRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))

	m.AddRows(tabelaCabecalhoRow())
	for _, r := range tabelaItemRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))
	m.AddRows(totaisRow(sale))

	if sale.NFe.Status == entity.NFeStatusAutorizado && sale.NFe.Chave != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: corCinza, Thickness: 0.3}))
		for _, r := range nfeRodapeRows(sale) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("gerar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// cabecalhoRow: razão social + CNPJ (esq) e número da venda + data (dir).
func cabecalhoRow(sale *entity.Sale, company *entity.Company) core.Row {
	numero := strings.ToUpper(sale.ID)
	if len(numero) > 8 {
		numero = numero[:8]
	}
	data := sale.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.RazaoSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: corPrimaria, Top: 1,
			}),
			text.New("CNPJ: "+br.Format(company.CNPJ), props.Text{
				Size: 9, Top: 9, Color: corCinza,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: corPrimaria, Top: 1,
			}),
			text.New("Nº "+numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: corCinza,
			}),
		),
	)
}

// emitenteRow: dados da empresa emissora.
func emitenteRow(company *entity.Company) core.Row {
	endereco := fmt.Sprintf("%s, %s - %s/%s", company.Logradouro, company.Numero, company.Municipio, company.UF)
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMITENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: corPrimaria, Top: 1,
			}),
			text.New(fmt.Sprintf("Endereço: %s   |   Tel: %s   |   Email: %s",
				endereco,
				ouTraco(company.Phone),
				ouTraco(company.Email),
			), props.Text{Size: 8, Top: 7, Color: corCinza}),
		),
	)
}

// clienteRow: dados do comprador.
func clienteRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: corPrimaria, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CPF/CNPJ: %s   |   Email: %s   |   Tel: %s",
				ouTraco(br.Format(customer.Document)),
				ouTraco(customer.Email),
				ouTraco(customer.Phone),
			), props.Text{Size: 8, Top: 12, Color: corCinza}),
		),
	)
}

// tabelaCabecalhoRow: cabeçalho da tabela de itens.
func tabelaCabecalhoRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: corPrimaria, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 2, align.Center),
		h("Produto", 5, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tabelaItemRows: uma fila por item da venda.
func tabelaItemRows(lines []sales.ReciboLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.Quantity,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+l.UnitPrice,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"R$ "+l.Subtotal,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totaisRow: bloco de totais alinhado à direita.
func totaisRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	totalLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: corPrimaria, Right: 2,
		})
	}
	totalValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: corPrimaria, Right: 1,
		})
	}

	condicao := "à vista"
	if sale.Condition == entity.PaymentAPrazo {
		condicao = "a prazo"
		if sale.DueDate != nil {
			condicao += " (venc. " + sale.DueDate.Format("02/01/2006") + ")"
		}
	}

	return row.New(26).Add(
		col.New(3).Add(
			text.New("Pagamento: "+condicao, props.Text{Size: 8, Top: 16, Color: corCinza}),
		),
		col.New(3).Add(
			label("Subtotal:"),
			label("Desconto:"),
			totalLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("R$ "+sale.Subtotal.StringFixed(2)),
			value("R$ "+sale.Discount.StringFixed(2)),
			totalValue("R$ "+sale.Total.StringFixed(2)),
		),
		col.New(3),
	)
}

// nfeRodapeRows: chave de acesso e protocolo da NF-e autorizada.
func nfeRodapeRows(sale *entity.Sale) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("NOTA FISCAL ELETRÔNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: corPrimaria, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Chave de acesso:", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New(sale.NFe.Chave, props.Text{Size: 7, Color: corCinza, Top: 0.5, Left: 2}),
		)),
	}
	if sale.NFe.Protocolo != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("Protocolo de autorização: "+sale.NFe.Protocolo, props.Text{
				Size: 7, Color: corCinza, Top: 0.5, Left: 2,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Consulte a autenticidade da NF-e no portal nacional "+
				"(www.nfe.fazenda.gov.br) usando a chave de acesso acima.",
			props.Text{Size: 6.5, Color: corCinza, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func ouTraco(s string) string {
	if s != "" {
		return s
	}
	return "—"
}
