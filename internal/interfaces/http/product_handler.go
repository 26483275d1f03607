package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/inventory"
	"github.com/gestorcampo/gestor-api/internal/application/usecase"
)

// ProductHandler CRUD de produtos e movimentações de estoque.
type ProductHandler struct {
	products *usecase.ProductUseCase
	stock    *inventory.UseCase
}

// NewProductHandler constrói o handler.
func NewProductHandler(products *usecase.ProductUseCase, stock *inventory.UseCase) *ProductHandler {
	return &ProductHandler{products: products, stock: stock}
}

// Create godoc
// @Summary      Criar produto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Dados do produto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/produtos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.products.Create(in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter produto por ID
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.products.GetByID(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return notFound(c, "produto não encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar produto (parcial; quantidade nunca é alterada aqui)
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.products.Update(c.Params("id"), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar produtos (ativos primeiro, nome ascendente)
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        incluir_inativos  query  bool    false  "Incluir inativos"
// @Param        busca             query  string  false  "Filtro por nome (insensível a acentos)"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/produtos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.products.List(c.QueryBool("incluir_inativos"), c.Query("busca"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Ativar/inativar produto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.StatusRequest  true  "ativo | inativo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id}/status [patch]
func (h *ProductHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	if err := h.products.SetStatus(c.Params("id"), in.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "status atualizado"})
}

// RegisterMovement godoc
// @Summary      Registrar movimentação de estoque (entrada/saída)
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimentação"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "Estoque insuficiente"
// @Router       /api/estoque/movimentos [post]
func (h *ProductHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	out, err := h.stock.RegisterMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimentações de estoque
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        produto_id  query  string  false  "Filtrar por produto"
// @Param        limit       query  int     false  "Limite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/estoque/movimentos [get]
func (h *ProductHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	productID := c.Query("produto_id")

	var (
		out []*dto.MovementResponse
		err error
	)
	if productID != "" {
		out, err = h.stock.ListByProduct(productID, limit, offset)
	} else {
		out, err = h.stock.ListMovements(limit, offset)
	}
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(out)
}
