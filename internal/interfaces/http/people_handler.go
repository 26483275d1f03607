package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/usecase"
)

// CustomerHandler CRUD de clientes.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler constrói o handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Criar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Dados do cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter cliente por ID
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return notFound(c, "cliente não encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar cliente (parcial)
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes (ativos primeiro, nome ascendente)
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        incluir_inativos  query  bool    false  "Incluir inativos"
// @Param        busca             query  string  false  "Filtro por nome"
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/clientes [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("incluir_inativos"), c.Query("busca"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Ativar/inativar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do cliente"
// @Param        body  body  dto.StatusRequest  true  "ativo | inativo"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/clientes/{id}/status [patch]
func (h *CustomerHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.uc.SetStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}

// SupplierHandler CRUD de fornecedores.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler constrói o handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return notFound(c, "fornecedor não encontrado")
	}
	return c.JSON(out)
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("incluir_inativos"), c.Query("busca"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *SupplierHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.uc.SetStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}

// EmployeeHandler CRUD de funcionários.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler constrói o handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return notFound(c, "funcionário não encontrado")
	}
	return c.JSON(out)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("incluir_inativos"), c.Query("busca"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *EmployeeHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.uc.SetStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}
