package entity

import "time"

// Supplier representa um fornecedor (compras e abates).
type Supplier struct {
	ID        string
	Name      string
	Document  string // CPF/CNPJ só dígitos
	Email     string
	Phone     string
	Municipio string
	UF        string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
