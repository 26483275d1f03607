package entity

import "time"

// Company dados da empresa emissora (registro único, singleton).
// Usada na montagem do payload de NF-e e no recibo de venda.
type Company struct {
	ID               string
	RazaoSocial      string
	NomeFantasia     string
	CNPJ             string // só dígitos
	IE               string
	RegimeTributario string // 1 = Simples Nacional, 3 = Regime Normal
	Logradouro       string
	Numero           string
	Bairro           string
	Municipio        string
	UF               string
	CEP              string
	CodigoMunicipio  string
	Email            string
	Phone            string
	UpdatedAt        time.Time
}
