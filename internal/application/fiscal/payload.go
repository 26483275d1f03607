package fiscal

import (
	"fmt"
	"time"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/infrastructure/focusnfe"
	"github.com/gestorcampo/gestor-api/pkg/br"
)

// montarNota traduz venda + cadastros para o payload do provedor. Os valores
// monetários vão como string com duas casas, quantidades com três.
func montarNota(in *dto.NFeEmitirRequest) (*focusnfe.NotaFiscal, error) {
	venda := in.Venda
	empresa := in.Empresa
	cliente := in.Cliente

	produtos := make(map[string]*dto.ProductResponse, len(in.TodosProdutos))
	for _, p := range in.TodosProdutos {
		produtos[p.ID] = p
	}
	unidades := make(map[string]*dto.UnitResponse, len(in.TodasUnidades))
	for _, u := range in.TodasUnidades {
		unidades[u.ID] = u
	}

	nota := &focusnfe.NotaFiscal{
		NaturezaOperacao:  "Venda de mercadoria",
		DataEmissao:       time.Now().Format("2006-01-02"),
		TipoDocumento:     "1",
		FinalidadeEmissao: "1",
		ConsumidorFinal:   "1",
		PresencaComprador: "1",
		ModalidadeFrete:   "9",

		CNPJEmitente:              br.Digits(empresa.CNPJ),
		NomeEmitente:              empresa.RazaoSocial,
		NomeFantasiaEmitente:      empresa.NomeFantasia,
		InscricaoEstadualEmitente: empresa.IE,
		RegimeTributarioEmitente:  empresa.RegimeTributario,
		LogradouroEmitente:        empresa.Logradouro,
		NumeroEmitente:            empresa.Numero,
		BairroEmitente:            empresa.Bairro,
		MunicipioEmitente:         empresa.Municipio,
		UFEmitente:                empresa.UF,
		CEPEmitente:               br.Digits(empresa.CEP),

		NomeDestinatario:            cliente.Name,
		LogradouroDestinatario:      cliente.Logradouro,
		NumeroDestinatario:          cliente.Numero,
		BairroDestinatario:          cliente.Bairro,
		MunicipioDestinatario:       cliente.Municipio,
		UFDestinatario:              cliente.UF,
		CEPDestinatario:             br.Digits(cliente.CEP),
		CodigoMunicipioDestinatario: cliente.CodigoMunicipio,

		ValorFrete:    "0.00",
		ValorSeguro:   "0.00",
		ValorProdutos: venda.Subtotal.StringFixed(2),
		ValorTotal:    venda.Total.StringFixed(2),
	}
	if !venda.Discount.IsZero() {
		nota.ValorDesconto = venda.Discount.StringFixed(2)
	}

	// CPF (11 dígitos) ou CNPJ (14) do destinatário; PJ exige IE ou isenção.
	doc := br.Digits(cliente.Document)
	switch len(doc) {
	case 11:
		nota.CPFDestinatario = doc
	case 14:
		nota.CNPJDestinatario = doc
		if cliente.IE != "" {
			nota.InscricaoEstadualDestinatario = cliente.IE
			nota.IndicadorInscricaoEstadualDestinatario = "1"
		} else {
			nota.IndicadorInscricaoEstadualDestinatario = "9"
		}
	default:
		return nil, fmt.Errorf("documento do cliente inválido (%d dígitos)", len(doc))
	}

	for i, item := range venda.Items {
		produto, ok := produtos[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("produto %s da venda não está no cadastro enviado", item.ProductID)
		}
		if produto.NCM == "" || produto.CFOP == "" {
			return nil, fmt.Errorf("produto %s sem códigos fiscais (NCM/CFOP)", produto.Name)
		}
		sigla := "UN"
		if u, ok := unidades[produto.UnitID]; ok && u.Sigla != "" {
			sigla = u.Sigla
		}

		nota.Items = append(nota.Items, focusnfe.Item{
			NumeroItem:              fmt.Sprintf("%d", i+1),
			CodigoProduto:           produto.ID,
			Descricao:               produto.Name,
			CodigoNCM:               produto.NCM,
			CEST:                    produto.CEST,
			CFOP:                    produto.CFOP,
			UnidadeComercial:        sigla,
			QuantidadeComercial:     item.Quantity.StringFixed(3),
			ValorUnitarioComercial:  item.UnitPrice.StringFixed(2),
			UnidadeTributavel:       sigla,
			QuantidadeTributavel:    item.Quantity.StringFixed(3),
			ValorUnitarioTributavel: item.UnitPrice.StringFixed(2),
			ValorBruto:              item.UnitPrice.Mul(item.Quantity).StringFixed(2),
			ICMSSituacaoTributaria:  "102", // Simples Nacional sem permissão de crédito
			ICMSOrigem:              "0",
			PISSituacaoTributaria:   "07",
			COFINSSituacaoTributaria: "07",
		})
	}
	return nota, nil
}
