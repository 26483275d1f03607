package repository

import "github.com/gestorcampo/gestor-api/internal/domain/entity"

// RoleRepository porta de cargos. Delete é exclusão física — o caso de uso
// verifica antes se há usuários vinculados (UserRepository.CountByRole).
type RoleRepository interface {
	Create(r *entity.Role) error
	GetByID(id string) (*entity.Role, error)
	Update(r *entity.Role) error
	List() ([]*entity.Role, error)
	Delete(id string) error
}

// UserRepository porta de usuários.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(includeInactive bool) ([]*entity.User, error)
	SetStatus(id, status string) error
	CountByRole(roleID string) (int, error)
}
