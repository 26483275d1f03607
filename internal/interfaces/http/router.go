package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorcampo/gestor-api/internal/application/abate"
	"github.com/gestorcampo/gestor-api/internal/application/auth"
	"github.com/gestorcampo/gestor-api/internal/application/finance"
	"github.com/gestorcampo/gestor-api/internal/application/fiscal"
	"github.com/gestorcampo/gestor-api/internal/application/inventory"
	"github.com/gestorcampo/gestor-api/internal/application/purchases"
	"github.com/gestorcampo/gestor-api/internal/application/sales"
	"github.com/gestorcampo/gestor-api/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *usecase.CustomerUseCase
	SupplierUC    *usecase.SupplierUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	RoleUC        *usecase.RoleUseCase
	CategoryUC    *usecase.CategoryUseCase
	UnitUC        *usecase.UnitUseCase
	BankAccountUC *usecase.BankAccountUseCase
	GoalUC        *usecase.GoalUseCase
	CompanyUC     *usecase.CompanyUseCase
	InventoryUC   *inventory.UseCase
	SaleUC        *sales.UseCase
	ReciboUC      *sales.ReciboUseCase
	PurchaseUC    *purchases.UseCase
	AbateUC       *abate.UseCase
	FinanceUC     *finance.UseCase
	FiscalUC      *fiscal.UseCase
	AuthUC        *auth.UseCase
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// DANFE inline (público: a ref já é a credencial de acesso)
	nfeHandler := NewNFeHandler(deps.FiscalUC)
	app.Get("/pdf/:ref", nfeHandler.DANFE)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	perm := func(module, action string) fiber.Handler {
		return RequirePermission(module, action, deps.AuthUC)
	}

	// Produtos e estoque
	productHandler := NewProductHandler(deps.ProductUC, deps.InventoryUC)
	produtos := protected.Group("/produtos")
	produtos.Post("/", perm("estoque", "criar"), productHandler.Create)
	produtos.Get("/", perm("estoque", "ver"), productHandler.List)
	produtos.Get("/:id", perm("estoque", "ver"), productHandler.GetByID)
	produtos.Put("/:id", perm("estoque", "editar"), productHandler.Update)
	produtos.Patch("/:id/status", perm("estoque", "editar"), productHandler.SetStatus)

	estoque := protected.Group("/estoque")
	estoque.Post("/movimentos", perm("estoque", "criar"), productHandler.RegisterMovement)
	estoque.Get("/movimentos", perm("estoque", "ver"), productHandler.ListMovements)

	// Clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	clientes := protected.Group("/clientes")
	clientes.Post("/", perm("vendas", "criar"), customerHandler.Create)
	clientes.Get("/", perm("vendas", "ver"), customerHandler.List)
	clientes.Get("/:id", perm("vendas", "ver"), customerHandler.GetByID)
	clientes.Put("/:id", perm("vendas", "editar"), customerHandler.Update)
	clientes.Patch("/:id/status", perm("vendas", "editar"), customerHandler.SetStatus)

	// Fornecedores
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	fornecedores := protected.Group("/fornecedores")
	fornecedores.Post("/", perm("compras", "criar"), supplierHandler.Create)
	fornecedores.Get("/", perm("compras", "ver"), supplierHandler.List)
	fornecedores.Get("/:id", perm("compras", "ver"), supplierHandler.GetByID)
	fornecedores.Put("/:id", perm("compras", "editar"), supplierHandler.Update)
	fornecedores.Patch("/:id/status", perm("compras", "editar"), supplierHandler.SetStatus)

	// Vendas
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReciboUC)
	vendas := protected.Group("/vendas")
	vendas.Post("/", perm("vendas", "criar"), saleHandler.Register)
	vendas.Get("/", perm("vendas", "ver"), saleHandler.List)
	vendas.Get("/:id", perm("vendas", "ver"), saleHandler.GetByID)
	vendas.Get("/:id/recibo", perm("vendas", "ver"), saleHandler.Recibo)

	// Compras
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	compras := protected.Group("/compras")
	compras.Post("/", perm("compras", "criar"), purchaseHandler.Register)
	compras.Get("/", perm("compras", "ver"), purchaseHandler.List)
	compras.Get("/:id", perm("compras", "ver"), purchaseHandler.GetByID)

	// Abates e produções
	abateHandler := NewAbateHandler(deps.AbateUC)
	abates := protected.Group("/abates")
	abates.Post("/", perm("abates", "criar"), abateHandler.Register)
	abates.Get("/", perm("abates", "ver"), abateHandler.List)
	abates.Get("/:id", perm("abates", "ver"), abateHandler.GetByID)
	abates.Post("/:id/producoes", perm("abates", "criar"), abateHandler.RegisterProducao)
	abates.Get("/:id/producoes", perm("abates", "ver"), abateHandler.ListProducoes)

	// Financeiro
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	financeiro := protected.Group("/financeiro")
	financeiro.Post("/pagar", perm("financeiro", "criar"), financeHandler.CreatePayable)
	financeiro.Get("/pagar", perm("financeiro", "ver"), financeHandler.ListPayables)
	financeiro.Patch("/pagar/:id/quitar", perm("financeiro", "editar"), financeHandler.SettlePayable)
	financeiro.Post("/receber", perm("financeiro", "criar"), financeHandler.CreateReceivable)
	financeiro.Get("/receber", perm("financeiro", "ver"), financeHandler.ListReceivables)
	financeiro.Patch("/receber/:id/quitar", perm("financeiro", "editar"), financeHandler.SettleReceivable)

	// NF-e (proxy fiscal)
	nfe := protected.Group("/nfe")
	nfe.Post("/emitir", perm("vendas", "criar"), nfeHandler.Emitir)
	nfe.Get("/consultar", perm("vendas", "ver"), nfeHandler.Consultar)
	nfe.Delete("/cancelar", perm("vendas", "editar"), nfeHandler.Cancelar)
	nfe.Post("/preview", perm("vendas", "ver"), nfeHandler.Preview)

	// Cadastros de apoio
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.UnitUC, deps.BankAccountUC, deps.GoalUC, deps.CompanyUC)
	categorias := protected.Group("/categorias")
	categorias.Post("/", perm("estoque", "criar"), catalogHandler.CreateCategory)
	categorias.Get("/", perm("estoque", "ver"), catalogHandler.ListCategories)
	categorias.Put("/:id", perm("estoque", "editar"), catalogHandler.UpdateCategory)
	categorias.Patch("/:id/status", perm("estoque", "editar"), catalogHandler.SetCategoryStatus)

	unidades := protected.Group("/unidades")
	unidades.Post("/", perm("estoque", "criar"), catalogHandler.CreateUnit)
	unidades.Get("/", perm("estoque", "ver"), catalogHandler.ListUnits)
	unidades.Put("/:id", perm("estoque", "editar"), catalogHandler.UpdateUnit)
	unidades.Patch("/:id/status", perm("estoque", "editar"), catalogHandler.SetUnitStatus)

	contas := protected.Group("/contas-bancarias")
	contas.Post("/", perm("financeiro", "criar"), catalogHandler.CreateBankAccount)
	contas.Get("/", perm("financeiro", "ver"), catalogHandler.ListBankAccounts)
	contas.Put("/:id", perm("financeiro", "editar"), catalogHandler.UpdateBankAccount)
	contas.Patch("/:id/status", perm("financeiro", "editar"), catalogHandler.SetBankAccountStatus)

	metas := protected.Group("/metas")
	metas.Post("/", perm("vendas", "criar"), catalogHandler.CreateGoal)
	metas.Get("/", perm("vendas", "ver"), catalogHandler.ListGoals)
	metas.Put("/:id", perm("vendas", "editar"), catalogHandler.UpdateGoal)
	metas.Patch("/:id/status", perm("vendas", "editar"), catalogHandler.SetGoalStatus)

	protected.Get("/empresa", perm("configuracoes", "ver"), catalogHandler.GetCompany)
	protected.Put("/empresa", perm("configuracoes", "editar"), catalogHandler.SaveCompany)

	// Usuários e cargos
	usuarios := protected.Group("/usuarios")
	usuarios.Post("/", perm("rh", "criar"), authHandler.CreateUser)
	usuarios.Get("/", perm("rh", "ver"), authHandler.ListUsers)
	usuarios.Patch("/:id/status", perm("rh", "editar"), authHandler.SetUserStatus)

	roleHandler := NewRoleHandler(deps.RoleUC)
	cargos := protected.Group("/cargos")
	cargos.Post("/", perm("rh", "criar"), roleHandler.Create)
	cargos.Get("/", perm("rh", "ver"), roleHandler.List)
	cargos.Get("/:id", perm("rh", "ver"), roleHandler.GetByID)
	cargos.Put("/:id", perm("rh", "editar"), roleHandler.Update)
	cargos.Delete("/:id", perm("rh", "excluir"), roleHandler.Delete)

	// Funcionários
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	funcionarios := protected.Group("/funcionarios")
	funcionarios.Post("/", perm("rh", "criar"), employeeHandler.Create)
	funcionarios.Get("/", perm("rh", "ver"), employeeHandler.List)
	funcionarios.Get("/:id", perm("rh", "ver"), employeeHandler.GetByID)
	funcionarios.Put("/:id", perm("rh", "editar"), employeeHandler.Update)
	funcionarios.Patch("/:id/status", perm("rh", "editar"), employeeHandler.SetStatus)
}
