package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest cadastro de categoria.
type CreateCategoryRequest struct {
	Name string `json:"nome"`
}

// CategoryResponse representação de categoria.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// CreateUnitRequest cadastro de unidade de medida.
type CreateUnitRequest struct {
	Name  string `json:"nome"`
	Sigla string `json:"sigla"`
}

// UnitResponse representação de unidade de medida.
type UnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Sigla     string    `json:"sigla"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// CreateBankAccountRequest cadastro de conta bancária.
type CreateBankAccountRequest struct {
	Name    string          `json:"nome"`
	Bank    string          `json:"banco"`
	Agency  string          `json:"agencia"`
	Number  string          `json:"numero"`
	Balance decimal.Decimal `json:"saldo"`
}

// UpdateBankAccountRequest atualização parcial de conta bancária.
type UpdateBankAccountRequest struct {
	Name    *string          `json:"nome"`
	Bank    *string          `json:"banco"`
	Agency  *string          `json:"agencia"`
	Number  *string          `json:"numero"`
	Balance *decimal.Decimal `json:"saldo"`
}

// BankAccountResponse representação de conta bancária.
type BankAccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"nome"`
	Bank      string          `json:"banco"`
	Agency    string          `json:"agencia"`
	Number    string          `json:"numero"`
	Balance   decimal.Decimal `json:"saldo"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"criado_em"`
	UpdatedAt time.Time       `json:"atualizado_em"`
}

// CreateGoalRequest cadastro de meta mensal. MonthRef no formato "2006-01".
type CreateGoalRequest struct {
	MonthRef string          `json:"mes_ref"`
	Amount   decimal.Decimal `json:"valor"`
}

// GoalResponse representação de meta mensal. Realized e Progress são
// calculados a partir das vendas do mês.
type GoalResponse struct {
	ID        string          `json:"id"`
	MonthRef  string          `json:"mes_ref"`
	Amount    decimal.Decimal `json:"valor"`
	Realized  decimal.Decimal `json:"realizado"`
	Progress  decimal.Decimal `json:"progresso"` // 0..100
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"criado_em"`
	UpdatedAt time.Time       `json:"atualizado_em"`
}

// CompanyRequest gravação do cadastro da empresa emissora.
type CompanyRequest struct {
	RazaoSocial      string `json:"razao_social"`
	NomeFantasia     string `json:"nome_fantasia"`
	CNPJ             string `json:"cnpj"`
	IE               string `json:"ie"`
	RegimeTributario string `json:"regime_tributario"`
	Logradouro       string `json:"logradouro"`
	Numero           string `json:"numero"`
	Bairro           string `json:"bairro"`
	Municipio        string `json:"municipio"`
	UF               string `json:"uf"`
	CEP              string `json:"cep"`
	CodigoMunicipio  string `json:"codigo_municipio"`
	Email            string `json:"email"`
	Phone            string `json:"telefone"`
}

// CompanyResponse representação do cadastro da empresa. CNPJ sai mascarado.
type CompanyResponse struct {
	RazaoSocial      string    `json:"razao_social"`
	NomeFantasia     string    `json:"nome_fantasia"`
	CNPJ             string    `json:"cnpj"`
	IE               string    `json:"ie"`
	RegimeTributario string    `json:"regime_tributario"`
	Logradouro       string    `json:"logradouro"`
	Numero           string    `json:"numero"`
	Bairro           string    `json:"bairro"`
	Municipio        string    `json:"municipio"`
	UF               string    `json:"uf"`
	CEP              string    `json:"cep"`
	CodigoMunicipio  string    `json:"codigo_municipio"`
	Email            string    `json:"email"`
	Phone            string    `json:"telefone"`
	UpdatedAt        time.Time `json:"atualizado_em"`
}
