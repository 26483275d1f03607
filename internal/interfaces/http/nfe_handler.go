package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/fiscal"
)

// NFeHandler endpoints do proxy de NF-e.
type NFeHandler struct {
	uc *fiscal.UseCase
}

// NewNFeHandler constrói o handler.
func NewNFeHandler(uc *fiscal.UseCase) *NFeHandler {
	return &NFeHandler{uc: uc}
}

// Emitir godoc
// @Summary      Emitir NF-e da venda
// @Tags         nfe
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NFeEmitirRequest  true  "Venda, empresa, cliente, produtos e unidades"
// @Success      200   {object}  dto.NFeEmitirResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/nfe/emitir [post]
func (h *NFeHandler) Emitir(c *fiber.Ctx) error {
	var in dto.NFeEmitirRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Emitir(c.Context(), &in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Consultar godoc
// @Summary      Consultar estado da NF-e
// @Tags         nfe
// @Security     Bearer
// @Produce      json
// @Param        ref  query  string  true  "Referência da NF-e"
// @Success      200  {object}  dto.NFeConsultarResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/nfe/consultar [get]
func (h *NFeHandler) Consultar(c *fiber.Ctx) error {
	ref := c.Query("ref")
	if ref == "" {
		return badRequest(c, "parâmetro ref obrigatório")
	}
	out, err := h.uc.Consultar(c.Context(), ref)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Cancelar godoc
// @Summary      Cancelar NF-e autorizada
// @Tags         nfe
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NFeCancelarRequest  true  "Referência e justificativa (mínimo 15 caracteres)"
// @Success      200   {object}  dto.NFeCancelarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/nfe/cancelar [delete]
func (h *NFeHandler) Cancelar(c *fiber.Ctx) error {
	var in dto.NFeCancelarRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.uc.Cancelar(c.Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Pré-visualizar o DANFE (homologação, sem persistir nada)
// @Tags         nfe
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.NFeEmitirRequest  true  "Mesmo payload da emissão"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/nfe/preview [post]
func (h *NFeHandler) Preview(c *fiber.Ctx) error {
	var in dto.NFeEmitirRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	data, err := h.uc.Preview(c.Context(), &in)
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}

// DANFE godoc
// @Summary      Exibir o DANFE inline
// @Tags         nfe
// @Produce      application/pdf
// @Param        ref  path  string  true  "Referência da NF-e"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pdf/{ref} [get]
func (h *NFeHandler) DANFE(c *fiber.Ctx) error {
	ref := c.Params("ref")
	data, contentType, err := h.uc.BaixarDANFE(c.Context(), ref)
	if err != nil {
		return respondErr(c, err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="danfe-`+ref+`.pdf"`)
	return c.Send(data)
}
