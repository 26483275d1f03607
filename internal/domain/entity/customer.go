package entity

import "time"

// Customer representa um cliente (pessoa física ou jurídica).
// Document guarda apenas dígitos (11 = CPF, 14 = CNPJ); a máscara é aplicada na exibição.
type Customer struct {
	ID              string
	Name            string
	Document        string // CPF/CNPJ só dígitos
	IE              string // inscrição estadual, vazio para PF
	Email           string
	Phone           string
	Logradouro      string
	Numero          string
	Bairro          string
	Municipio       string
	UF              string
	CEP             string
	CodigoMunicipio string // código IBGE, exigido pela NF-e
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
