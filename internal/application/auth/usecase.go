// Package auth implementa login com bcrypt + JWT e a criação de usuários.
package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
	"github.com/gestorcampo/gestor-api/pkg/config"
	"github.com/gestorcampo/gestor-api/pkg/jwt"
)

// UseCase caso de uso de autenticação e usuários.
type UseCase struct {
	users repository.UserRepository
	roles repository.RoleRepository
	cfg   config.JWTConfig
}

// NewUseCase constrói o caso de uso.
func NewUseCase(users repository.UserRepository, roles repository.RoleRepository, cfg config.JWTConfig) *UseCase {
	return &UseCase{users: users, roles: roles, cfg: cfg}
}

// Login autentica por e-mail e senha e devolve o token JWT. Usuário inativo
// não entra; a mesma mensagem cobre e-mail inexistente e senha errada.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("e-mail e senha obrigatórios: %w", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.StatusAtivo {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Name, user.RoleID, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("gerar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// CreateUser cria um usuário com senha em bcrypt. O cargo precisa existir.
func (uc *UseCase) CreateUser(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || in.RoleID == "" {
		return nil, fmt.Errorf("nome, e-mail e cargo obrigatórios: %w", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("senha deve ter ao menos 6 caracteres: %w", domain.ErrInvalidInput)
	}
	role, err := uc.roles.GetByID(in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("cargo %s: %w", in.RoleID, domain.ErrNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("gerar hash de senha: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		RoleID:       in.RoleID,
		Status:       entity.StatusAtivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers devolve os usuários, ativos primeiro.
func (uc *UseCase) ListUsers(includeInactive bool) ([]dto.UserResponse, error) {
	list, err := uc.users.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// SetUserStatus troca o status ativo/inativo.
func (uc *UseCase) SetUserStatus(id, status string) error {
	if status != entity.StatusAtivo && status != entity.StatusInativo {
		return domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.users.SetStatus(id, status)
}

// GetRole devolve o cargo de um usuário autenticado (para o middleware de
// permissão).
func (uc *UseCase) GetRole(roleID string) (*entity.Role, error) {
	return uc.roles.GetByID(roleID)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RoleID:    u.RoleID,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
