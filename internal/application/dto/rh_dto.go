package dto

import (
	"time"

	"github.com/gestorcampo/gestor-api/internal/domain/entity"
)

// LoginRequest autenticação por e-mail e senha.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// LoginResponse token JWT e dados básicos do usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

// CreateUserRequest cadastro de usuário.
type CreateUserRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	RoleID   string `json:"cargo_id"`
}

// UserResponse representação de usuário (nunca expõe o hash de senha).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	RoleID    string    `json:"cargo_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// CreateRoleRequest cadastro de cargo com matriz de permissões.
type CreateRoleRequest struct {
	Name        string              `json:"nome"`
	Description string              `json:"descricao"`
	Permissions []entity.Permission `json:"permissoes"`
}

// UpdateRoleRequest atualização de cargo.
type UpdateRoleRequest struct {
	Name        *string              `json:"nome"`
	Description *string              `json:"descricao"`
	Permissions *[]entity.Permission `json:"permissoes"`
}

// RoleResponse representação de cargo.
type RoleResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"nome"`
	Description string              `json:"descricao"`
	Permissions []entity.Permission `json:"permissoes"`
	CreatedAt   time.Time           `json:"criado_em"`
	UpdatedAt   time.Time           `json:"atualizado_em"`
}
