package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/finance"
)

// FinanceHandler contas a pagar e a receber.
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler constrói o handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// CreatePayable godoc
// @Summary      Criar conta a pagar avulsa
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePayableRequest  true  "Conta a pagar"
// @Success      201   {object}  dto.PayableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/financeiro/pagar [post]
func (h *FinanceHandler) CreatePayable(c *fiber.Ctx) error {
	var in dto.CreatePayableRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.CreatePayable(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayables godoc
// @Summary      Listar contas a pagar
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente | pago"
// @Param        limit   query  int     false  "Limite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.PayableResponse
// @Router       /api/financeiro/pagar [get]
func (h *FinanceHandler) ListPayables(c *fiber.Ctx) error {
	out, err := h.uc.ListPayables(c.Query("status"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// SettlePayable godoc
// @Summary      Baixar (quitar) conta a pagar
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da conta"
// @Success      200  {object}  dto.PayableResponse
// @Failure      409  {object}  dto.ErrorResponse  "Já quitada"
// @Router       /api/financeiro/pagar/{id}/quitar [patch]
func (h *FinanceHandler) SettlePayable(c *fiber.Ctx) error {
	out, err := h.uc.SettlePayable(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// CreateReceivable godoc
// @Summary      Criar conta a receber avulsa
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceivableRequest  true  "Conta a receber"
// @Success      201   {object}  dto.ReceivableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/financeiro/receber [post]
func (h *FinanceHandler) CreateReceivable(c *fiber.Ctx) error {
	var in dto.CreateReceivableRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.CreateReceivable(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReceivables godoc
// @Summary      Listar contas a receber
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente | pago"
// @Param        limit   query  int     false  "Limite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ReceivableResponse
// @Router       /api/financeiro/receber [get]
func (h *FinanceHandler) ListReceivables(c *fiber.Ctx) error {
	out, err := h.uc.ListReceivables(c.Query("status"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// SettleReceivable godoc
// @Summary      Baixar (quitar) conta a receber
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da conta"
// @Success      200  {object}  dto.ReceivableResponse
// @Failure      409  {object}  dto.ErrorResponse  "Já quitada"
// @Router       /api/financeiro/receber/{id}/quitar [patch]
func (h *FinanceHandler) SettleReceivable(c *fiber.Ctx) error {
	out, err := h.uc.SettleReceivable(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}
