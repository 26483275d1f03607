package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/usecase"
)

// CatalogHandler cadastros de apoio: categorias, unidades, contas bancárias,
// metas e empresa.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	units      *usecase.UnitUseCase
	accounts   *usecase.BankAccountUseCase
	goals      *usecase.GoalUseCase
	company    *usecase.CompanyUseCase
}

// NewCatalogHandler constrói o handler.
func NewCatalogHandler(
	categories *usecase.CategoryUseCase,
	units *usecase.UnitUseCase,
	accounts *usecase.BankAccountUseCase,
	goals *usecase.GoalUseCase,
	company *usecase.CompanyUseCase,
) *CatalogHandler {
	return &CatalogHandler{categories: categories, units: units, accounts: accounts, goals: goals, company: company}
}

// ── Categorias ────────────────────────────────────────────────────────────────

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.categories.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.categories.Update(c.Params("id"), in.Name)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.QueryBool("incluir_inativos"), c.Query("busca"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) SetCategoryStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.categories.SetStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}

// ── Unidades ──────────────────────────────────────────────────────────────────

func (h *CatalogHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.units.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) UpdateUnit(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.units.Update(c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) ListUnits(c *fiber.Ctx) error {
	out, err := h.units.List(c.QueryBool("incluir_inativos"), c.Query("busca"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) SetUnitStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.units.SetStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}

// ── Contas bancárias ──────────────────────────────────────────────────────────

func (h *CatalogHandler) CreateBankAccount(c *fiber.Ctx) error {
	var in dto.CreateBankAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.accounts.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) UpdateBankAccount(c *fiber.Ctx) error {
	var in dto.UpdateBankAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.accounts.Update(c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) ListBankAccounts(c *fiber.Ctx) error {
	out, err := h.accounts.List(c.QueryBool("incluir_inativos"), c.Query("busca"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) SetBankAccountStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.accounts.SetStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}

// ── Metas ─────────────────────────────────────────────────────────────────────

func (h *CatalogHandler) CreateGoal(c *fiber.Ctx) error {
	var in dto.CreateGoalRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.goals.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) UpdateGoal(c *fiber.Ctx) error {
	var in struct {
		Amount decimal.Decimal `json:"valor"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.goals.Update(c.Params("id"), in.Amount)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) ListGoals(c *fiber.Ctx) error {
	out, err := h.goals.List(c.QueryBool("incluir_inativos"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) SetGoalStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.goals.SetStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}

// ── Empresa ───────────────────────────────────────────────────────────────────

// GetCompany devolve o cadastro da empresa emissora (204 se ainda não preenchido).
func (h *CatalogHandler) GetCompany(c *fiber.Ctx) error {
	out, err := h.company.Get()
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// SaveCompany grava o cadastro da empresa emissora.
func (h *CatalogHandler) SaveCompany(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.company.Save(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}
