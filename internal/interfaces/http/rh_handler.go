package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/auth"
	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/usecase"
)

// AuthHandler login e gestão de usuários.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Autenticar usuário
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "E-mail e senha"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Criar usuário
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Dados do usuário"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse  "E-mail já cadastrado"
// @Router       /api/usuarios [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.CreateUser(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuários
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        incluir_inativos  query  bool  false  "Incluir inativos"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/usuarios [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.QueryBool("incluir_inativos"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// SetUserStatus godoc
// @Summary      Ativar/inativar usuário
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do usuário"
// @Param        body  body  dto.StatusRequest  true  "ativo | inativo"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/usuarios/{id}/status [patch]
func (h *AuthHandler) SetUserStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.uc.SetUserStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}

// RoleHandler CRUD de cargos.
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

// NewRoleHandler constrói o handler.
func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *RoleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return notFound(c, "cargo não encontrado")
	}
	return c.JSON(out)
}

func (h *RoleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *RoleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir cargo (bloqueado com usuários vinculados)
// @Tags         cargos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do cargo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse  "Cargo em uso"
// @Router       /api/cargos/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cargo excluído"})
}
