package dto

// Formas do proxy de NF-e. Os nomes de campo seguem o contrato da interface
// HTTP (português), que por sua vez espelha o vocabulário do provedor.

// NFeEmitirRequest payload de emissão: a venda e os cadastros necessários para
// montar a NF-e. Todos os blocos são obrigatórios.
type NFeEmitirRequest struct {
	Venda         *SaleResponse      `json:"venda"`
	Empresa       *CompanyResponse   `json:"empresa"`
	Cliente       *CustomerResponse  `json:"cliente"`
	TodosProdutos []*ProductResponse `json:"todosProdutos"`
	TodasUnidades []*UnitResponse    `json:"todasUnidades"`
}

// NFeEmitirResponse resposta de sucesso da emissão.
type NFeEmitirResponse struct {
	Message            string `json:"message"`
	Ref                string `json:"ref"`
	Status             string `json:"status"`
	CaminhoDANFE       string `json:"caminho_danfe"`
	CaminhoXMLNotaFis  string `json:"caminho_xml_nota_fiscal"`
	Autorizacao        any    `json:"autorizacao,omitempty"`
}

// NFeConsultarResponse resposta da consulta por referência, com os nomes de
// campo normalizados (o provedor usa outros).
type NFeConsultarResponse struct {
	Ref          string `json:"ref"`
	Status       string `json:"status"`
	URLDANFE     string `json:"url_danfe"`
	URLXML       string `json:"url_xml"`
	Chave        string `json:"chave"`
	Protocolo    string `json:"protocolo"`
	MensagemSefaz string `json:"mensagem_sefaz"`
	Erros        any    `json:"erros,omitempty"`
}

// NFeCancelarRequest cancelamento: justificativa com no mínimo 15 caracteres.
type NFeCancelarRequest struct {
	Ref           string `json:"ref"`
	Justificativa string `json:"justificativa"`
}

// NFeCancelarResponse resposta do cancelamento.
type NFeCancelarResponse struct {
	Ref           string `json:"ref"`
	Status        string `json:"status"`
	MensagemSefaz string `json:"mensagem_sefaz"`
	Erros         any    `json:"erros,omitempty"`
}
