package focusnfe

// Formas de requisição/resposta do provedor de NF-e (API estilo Focus NFe).
// Os nomes de campo JSON são os do provedor, não os da nossa API.

// NotaFiscal payload de emissão.
type NotaFiscal struct {
	NaturezaOperacao         string `json:"natureza_operacao"`
	DataEmissao              string `json:"data_emissao"`
	TipoDocumento            string `json:"tipo_documento"`   // 1 = saída
	FinalidadeEmissao        string `json:"finalidade_emissao"` // 1 = normal
	ConsumidorFinal          string `json:"consumidor_final"`
	PresencaComprador        string `json:"presenca_comprador"`
	CNPJEmitente             string `json:"cnpj_emitente"`
	NomeEmitente             string `json:"nome_emitente"`
	NomeFantasiaEmitente     string `json:"nome_fantasia_emitente,omitempty"`
	InscricaoEstadualEmitente string `json:"inscricao_estadual_emitente"`
	RegimeTributarioEmitente string `json:"regime_tributario_emitente"`
	LogradouroEmitente       string `json:"logradouro_emitente"`
	NumeroEmitente           string `json:"numero_emitente"`
	BairroEmitente           string `json:"bairro_emitente"`
	MunicipioEmitente        string `json:"municipio_emitente"`
	UFEmitente               string `json:"uf_emitente"`
	CEPEmitente              string `json:"cep_emitente"`

	NomeDestinatario            string `json:"nome_destinatario"`
	CPFDestinatario             string `json:"cpf_destinatario,omitempty"`
	CNPJDestinatario            string `json:"cnpj_destinatario,omitempty"`
	InscricaoEstadualDestinatario string `json:"inscricao_estadual_destinatario,omitempty"`
	IndicadorInscricaoEstadualDestinatario string `json:"indicador_inscricao_estadual_destinatario,omitempty"`
	LogradouroDestinatario      string `json:"logradouro_destinatario,omitempty"`
	NumeroDestinatario          string `json:"numero_destinatario,omitempty"`
	BairroDestinatario          string `json:"bairro_destinatario,omitempty"`
	MunicipioDestinatario       string `json:"municipio_destinatario,omitempty"`
	UFDestinatario              string `json:"uf_destinatario,omitempty"`
	CEPDestinatario             string `json:"cep_destinatario,omitempty"`
	CodigoMunicipioDestinatario string `json:"codigo_municipio_destinatario,omitempty"`

	ValorFrete    string `json:"valor_frete"`
	ValorSeguro   string `json:"valor_seguro"`
	ValorTotal    string `json:"valor_total"`
	ValorProdutos string `json:"valor_produtos"`
	ValorDesconto string `json:"valor_desconto,omitempty"`
	ModalidadeFrete string `json:"modalidade_frete"` // 9 = sem frete

	Items []Item `json:"items"`
}

// Item linha da NF-e.
type Item struct {
	NumeroItem              string `json:"numero_item"`
	CodigoProduto           string `json:"codigo_produto"`
	Descricao               string `json:"descricao"`
	CodigoNCM               string `json:"codigo_ncm"`
	CEST                    string `json:"cest,omitempty"`
	CFOP                    string `json:"cfop"`
	UnidadeComercial        string `json:"unidade_comercial"`
	QuantidadeComercial     string `json:"quantidade_comercial"`
	ValorUnitarioComercial  string `json:"valor_unitario_comercial"`
	UnidadeTributavel       string `json:"unidade_tributavel"`
	QuantidadeTributavel    string `json:"quantidade_tributavel"`
	ValorUnitarioTributavel string `json:"valor_unitario_tributavel"`
	ValorBruto              string `json:"valor_bruto"`
	ICMSSituacaoTributaria  string `json:"icms_situacao_tributaria"`
	ICMSOrigem              string `json:"icms_origem"`
	PISSituacaoTributaria   string `json:"pis_situacao_tributaria"`
	COFINSSituacaoTributaria string `json:"cofins_situacao_tributaria"`
}

// Resposta corpo devolvido pelo provedor na emissão/consulta/cancelamento.
// Nem todos os campos vêm em todas as operações.
type Resposta struct {
	Ref               string `json:"ref"`
	Status            string `json:"status"`
	StatusSefaz       string `json:"status_sefaz"`
	MensagemSefaz     string `json:"mensagem_sefaz"`
	ChaveNFe          string `json:"chave_nfe"`
	NumeroProtocolo   string `json:"protocolo"`
	CaminhoDANFE      string `json:"caminho_danfe"`
	CaminhoXML        string `json:"caminho_xml_nota_fiscal"`
	CaminhoXMLCancel  string `json:"caminho_xml_cancelamento"`

	// Formas de erro do provedor: às vezes plano, às vezes aninhado.
	Codigo   string `json:"codigo"`
	Mensagem string `json:"mensagem"`
	Erros    []struct {
		Codigo   string `json:"codigo"`
		Mensagem string `json:"mensagem"`
		Campo    string `json:"campo"`
	} `json:"erros"`
}

// Pendente estados do provedor que ainda vão mudar (o poller reconsulta).
func (r *Resposta) Pendente() bool {
	return r.Status == "processando_autorizacao"
}

// Rejeitada status de erro explícito no corpo, mesmo sob HTTP 2xx.
func (r *Resposta) Rejeitada() bool {
	return r.Status == "erro_autorizacao"
}
