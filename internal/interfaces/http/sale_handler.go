package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/sales"
)

// SaleHandler registro e consulta de vendas, mais o recibo em PDF.
type SaleHandler struct {
	uc     *sales.UseCase
	recibo *sales.ReciboUseCase
}

// NewSaleHandler constrói o handler.
func NewSaleHandler(uc *sales.UseCase, recibo *sales.ReciboUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, recibo: recibo}
}

// Register godoc
// @Summary      Registrar venda (baixas de estoque e conta a receber na mesma transação)
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Venda com itens"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "Estoque insuficiente (nenhuma escrita é feita)"
// @Router       /api/vendas [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.RegisterSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter venda por ID (com itens e sub-registro fiscal)
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return notFound(c, "venda não encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar vendas (mais recentes primeiro)
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/vendas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Recibo godoc
// @Summary      Recibo de venda em PDF
// @Tags         vendas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendas/{id}/recibo [get]
func (h *SaleHandler) Recibo(c *fiber.Ctx) error {
	data, err := h.recibo.Generate(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}
