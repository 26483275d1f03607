package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/abate"
	"github.com/gestorcampo/gestor-api/internal/application/dto"
)

// AbateHandler registro de abates e das produções derivadas.
type AbateHandler struct {
	uc *abate.UseCase
}

// NewAbateHandler constrói o handler.
func NewAbateHandler(uc *abate.UseCase) *AbateHandler {
	return &AbateHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar abate (lote aberto; conta a pagar na mesma transação quando a prazo)
// @Tags         abates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAbateRequest  true  "Abate"
// @Success      201   {object}  dto.AbateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/abates [post]
func (h *AbateHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterAbateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.RegisterAbate(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter abate por ID
// @Tags         abates
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do abate"
// @Success      200  {object}  dto.AbateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/abates/{id} [get]
func (h *AbateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetAbate(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return notFound(c, "abate não encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar abates (mais recentes primeiro)
// @Tags         abates
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.AbateResponse
// @Router       /api/abates [get]
func (h *AbateHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAbates(c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// RegisterProducao godoc
// @Summary      Registrar produção do abate (entradas de estoque; fecha o lote)
// @Tags         abates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do abate"
// @Param        body  body  dto.RegisterProducaoRequest  true  "Itens produzidos"
// @Success      201   {object}  dto.ProducaoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Abate já processado"
// @Router       /api/abates/{id}/producoes [post]
func (h *AbateHandler) RegisterProducao(c *fiber.Ctx) error {
	var in dto.RegisterProducaoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	in.AbateID = c.Params("id")
	out, err := h.uc.RegisterProducao(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProducoes godoc
// @Summary      Listar produções de um abate
// @Tags         abates
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do abate"
// @Success      200  {array}  dto.ProducaoResponse
// @Router       /api/abates/{id}/producoes [get]
func (h *AbateHandler) ListProducoes(c *fiber.Ctx) error {
	out, err := h.uc.ListProducoes(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}
