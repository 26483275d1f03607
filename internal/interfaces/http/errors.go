package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/fiscal"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/infrastructure/focusnfe"
)

// respondErr traduz os erros de domínio para o corpo uniforme {message, detalhes}.
// Erro explícito do provedor de NF-e espelha o status HTTP do upstream; falha de
// comunicação e credenciais ausentes respondem 500.
func respondErr(c *fiber.Ctx, err error) error {
	var pe *focusnfe.ErroProvedor
	if errors.As(err, &pe) {
		status := pe.StatusCode
		if status < 400 || status > 599 {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Message:  pe.Mensagem,
			Detalhes: detalhesProvedor(pe),
		})
	}

	switch {
	case errors.Is(err, fiscal.ErrNaoConfigurado):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "emissão de NF-e não configurada: defina as credenciais do provedor",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrRoleInUse), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
}

// detalhesProvedor expõe o corpo bruto do provedor quando houver, para o
// cliente inspecionar os erros campo a campo.
func detalhesProvedor(pe *focusnfe.ErroProvedor) any {
	if len(pe.Raw) == 0 {
		return nil
	}
	return pe.Raw
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: msg})
}
