package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest cadastro de cliente. Document aceita CPF/CNPJ mascarado
// ou só dígitos; é normalizado para dígitos na persistência.
type CreateCustomerRequest struct {
	Name            string `json:"nome"`
	Document        string `json:"documento"`
	IE              string `json:"ie"`
	Email           string `json:"email"`
	Phone           string `json:"telefone"`
	Logradouro      string `json:"logradouro"`
	Numero          string `json:"numero"`
	Bairro          string `json:"bairro"`
	Municipio       string `json:"municipio"`
	UF              string `json:"uf"`
	CEP             string `json:"cep"`
	CodigoMunicipio string `json:"codigo_municipio"`
}

// UpdateCustomerRequest atualização parcial de cliente.
type UpdateCustomerRequest struct {
	Name            *string `json:"nome"`
	Document        *string `json:"documento"`
	IE              *string `json:"ie"`
	Email           *string `json:"email"`
	Phone           *string `json:"telefone"`
	Logradouro      *string `json:"logradouro"`
	Numero          *string `json:"numero"`
	Bairro          *string `json:"bairro"`
	Municipio       *string `json:"municipio"`
	UF              *string `json:"uf"`
	CEP             *string `json:"cep"`
	CodigoMunicipio *string `json:"codigo_municipio"`
}

// CustomerResponse representação de cliente. Document sai mascarado
// (000.000.000-00 / 00.000.000/0000-00).
type CustomerResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"nome"`
	Document        string    `json:"documento"`
	IE              string    `json:"ie"`
	Email           string    `json:"email"`
	Phone           string    `json:"telefone"`
	Logradouro      string    `json:"logradouro"`
	Numero          string    `json:"numero"`
	Bairro          string    `json:"bairro"`
	Municipio       string    `json:"municipio"`
	UF              string    `json:"uf"`
	CEP             string    `json:"cep"`
	CodigoMunicipio string    `json:"codigo_municipio"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"criado_em"`
	UpdatedAt       time.Time `json:"atualizado_em"`
}

// CreateSupplierRequest cadastro de fornecedor.
type CreateSupplierRequest struct {
	Name      string `json:"nome"`
	Document  string `json:"documento"`
	Email     string `json:"email"`
	Phone     string `json:"telefone"`
	Municipio string `json:"municipio"`
	UF        string `json:"uf"`
}

// UpdateSupplierRequest atualização parcial de fornecedor.
type UpdateSupplierRequest struct {
	Name      *string `json:"nome"`
	Document  *string `json:"documento"`
	Email     *string `json:"email"`
	Phone     *string `json:"telefone"`
	Municipio *string `json:"municipio"`
	UF        *string `json:"uf"`
}

// SupplierResponse representação de fornecedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Document  string    `json:"documento"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefone"`
	Municipio string    `json:"municipio"`
	UF        string    `json:"uf"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// CreateEmployeeRequest cadastro de funcionário.
type CreateEmployeeRequest struct {
	Name          string          `json:"nome"`
	Document      string          `json:"documento"`
	Position      string          `json:"funcao"`
	Salary        decimal.Decimal `json:"salario"`
	AdmissionDate time.Time       `json:"data_admissao"`
}

// UpdateEmployeeRequest atualização parcial de funcionário.
type UpdateEmployeeRequest struct {
	Name          *string          `json:"nome"`
	Document      *string          `json:"documento"`
	Position      *string          `json:"funcao"`
	Salary        *decimal.Decimal `json:"salario"`
	AdmissionDate *time.Time       `json:"data_admissao"`
}

// EmployeeResponse representação de funcionário.
type EmployeeResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"nome"`
	Document      string          `json:"documento"`
	Position      string          `json:"funcao"`
	Salary        decimal.Decimal `json:"salario"`
	AdmissionDate time.Time       `json:"data_admissao"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"criado_em"`
	UpdatedAt     time.Time       `json:"atualizado_em"`
}
