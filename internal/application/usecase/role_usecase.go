package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// RoleUseCase CRUD de cargos. É o único cadastro com exclusão física;
// o delete é bloqueado enquanto houver usuários vinculados ao cargo.
type RoleUseCase struct {
	roles    repository.RoleRepository
	users    repository.UserRepository
	notifier *events.Notifier
}

// NewRoleUseCase constrói o caso de uso.
func NewRoleUseCase(roles repository.RoleRepository, users repository.UserRepository, notifier *events.Notifier) *RoleUseCase {
	return &RoleUseCase{roles: roles, users: users, notifier: notifier}
}

// Create cria um cargo.
func (uc *RoleUseCase) Create(in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Permissions: in.Permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if role.Permissions == nil {
		role.Permissions = []entity.Permission{}
	}
	if err := uc.roles.Create(role); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "roles", Action: "created", ID: role.ID})
	return toRoleResponse(role), nil
}

// GetByID devolve um cargo, ou nil se não existir.
func (uc *RoleUseCase) GetByID(id string) (*dto.RoleResponse, error) {
	role, err := uc.roles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}
	return toRoleResponse(role), nil
}

// Update atualização parcial.
func (uc *RoleUseCase) Update(id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.roles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("nome não pode ficar vazio: %w", domain.ErrInvalidInput)
		}
		role.Name = *in.Name
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	if in.Permissions != nil {
		role.Permissions = *in.Permissions
		if role.Permissions == nil {
			role.Permissions = []entity.Permission{}
		}
	}

	role.UpdatedAt = time.Now()
	if err := uc.roles.Update(role); err != nil {
		return nil, err
	}
	uc.notifier.Publish(events.Change{Entity: "roles", Action: "updated", ID: role.ID})
	return toRoleResponse(role), nil
}

// List devolve todos os cargos.
func (uc *RoleUseCase) List() ([]*dto.RoleResponse, error) {
	list, err := uc.roles.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRoleResponse(r))
	}
	return out, nil
}

// Delete exclui o cargo fisicamente. Falha com ErrRoleInUse se ainda
// existirem usuários vinculados.
func (uc *RoleUseCase) Delete(id string) error {
	role, err := uc.roles.GetByID(id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	count, err := uc.users.CountByRole(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("cargo com %d usuário(s) vinculado(s): %w", count, domain.ErrRoleInUse)
	}
	if err := uc.roles.Delete(id); err != nil {
		return err
	}
	uc.notifier.Publish(events.Change{Entity: "roles", Action: "deleted", ID: id})
	return nil
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
