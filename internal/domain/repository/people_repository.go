package repository

import "github.com/gestorcampo/gestor-api/internal/domain/entity"

// CustomerRepository porta de persistência de clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(c *entity.Customer) error
	List(includeInactive bool) ([]*entity.Customer, error)
	SetStatus(id, status string) error
}

// SupplierRepository porta de persistência de fornecedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(s *entity.Supplier) error
	List(includeInactive bool) ([]*entity.Supplier, error)
	SetStatus(id, status string) error
}

// EmployeeRepository porta de persistência de funcionários.
type EmployeeRepository interface {
	Create(e *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	Update(e *entity.Employee) error
	List(includeInactive bool) ([]*entity.Employee, error)
	SetStatus(id, status string) error
}
