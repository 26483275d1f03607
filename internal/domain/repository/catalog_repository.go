package repository

import "github.com/gestorcampo/gestor-api/internal/domain/entity"

// CategoryRepository porta de categorias de produto.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(c *entity.Category) error
	List(includeInactive bool) ([]*entity.Category, error)
	SetStatus(id, status string) error
}

// UnitRepository porta de unidades de medida.
type UnitRepository interface {
	Create(u *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	Update(u *entity.Unit) error
	List(includeInactive bool) ([]*entity.Unit, error)
	SetStatus(id, status string) error
}

// BankAccountRepository porta de contas bancárias.
type BankAccountRepository interface {
	Create(b *entity.BankAccount) error
	GetByID(id string) (*entity.BankAccount, error)
	Update(b *entity.BankAccount) error
	List(includeInactive bool) ([]*entity.BankAccount, error)
	SetStatus(id, status string) error
}

// GoalRepository porta de metas mensais.
type GoalRepository interface {
	Create(g *entity.Goal) error
	GetByID(id string) (*entity.Goal, error)
	GetByMonthRef(monthRef string) (*entity.Goal, error)
	Update(g *entity.Goal) error
	List(includeInactive bool) ([]*entity.Goal, error)
	SetStatus(id, status string) error
}

// CompanyRepository porta do cadastro singleton da empresa.
type CompanyRepository interface {
	Get() (*entity.Company, error)
	Upsert(c *entity.Company) error
}
