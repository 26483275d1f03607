package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gestorcampo/gestor-api/internal/application/abate"
	"github.com/gestorcampo/gestor-api/internal/application/auth"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/application/finance"
	"github.com/gestorcampo/gestor-api/internal/application/fiscal"
	"github.com/gestorcampo/gestor-api/internal/application/inventory"
	"github.com/gestorcampo/gestor-api/internal/application/purchases"
	"github.com/gestorcampo/gestor-api/internal/application/sales"
	"github.com/gestorcampo/gestor-api/internal/application/usecase"
	"github.com/gestorcampo/gestor-api/internal/infrastructure/focusnfe"
	infrapdf "github.com/gestorcampo/gestor-api/internal/infrastructure/pdf"
	"github.com/gestorcampo/gestor-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestorcampo/gestor-api/internal/interfaces/http"
	"github.com/gestorcampo/gestor-api/pkg/config"
	"github.com/gestorcampo/gestor-api/pkg/logger"
)

//go:generate swag init --dir ../.. --generalInfo cmd/api/main.go --output ../../docs

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	// Repositórios
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	abateRepo := postgres.NewAbateRepository(pool)
	producaoRepo := postgres.NewProducaoRepository(pool)
	payableRepo := postgres.NewPayableRepository(pool)
	receivableRepo := postgres.NewReceivableRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	bankAccountRepo := postgres.NewBankAccountRepository(pool)
	goalRepo := postgres.NewGoalRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador de mudanças (assinatura com cancelamento)
	notifier := events.NewNotifier()

	// Casos de uso
	inventoryUC := inventory.NewUseCase(txRunner, movementRepo, notifier)
	saleUC := sales.NewUseCase(txRunner, saleRepo, customerRepo, notifier)
	purchaseUC := purchases.NewUseCase(txRunner, purchaseRepo, supplierRepo, notifier)
	abateUC := abate.NewUseCase(txRunner, abateRepo, producaoRepo, supplierRepo, notifier)
	financeUC := finance.NewUseCase(payableRepo, receivableRepo, notifier)
	authUC := auth.NewUseCase(userRepo, roleRepo, cfg.JWT)

	productUC := usecase.NewProductUseCase(productRepo, notifier)
	customerUC := usecase.NewCustomerUseCase(customerRepo, notifier)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, notifier)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, notifier)
	roleUC := usecase.NewRoleUseCase(roleRepo, userRepo, notifier)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, notifier)
	unitUC := usecase.NewUnitUseCase(unitRepo, notifier)
	bankAccountUC := usecase.NewBankAccountUseCase(bankAccountRepo, notifier)
	goalUC := usecase.NewGoalUseCase(goalRepo, saleRepo, notifier)
	companyUC := usecase.NewCompanyUseCase(companyRepo, notifier)

	// Recibo de venda em PDF
	reciboUC := sales.NewReciboUseCase(saleRepo, customerRepo, productRepo, companyRepo, infrapdf.NewReciboGenerator())

	// Proxy fiscal (provedor estilo Focus NFe) + poller de status
	provider := focusnfe.NewClient(cfg.NFE, log)
	fiscalUC := fiscal.NewUseCase(cfg.NFE, provider, saleRepo, notifier, log)

	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	poller := fiscal.NewPoller(fiscalUC, saleRepo, notifier, log,
		time.Duration(cfg.NFE.PollIntervalSec)*time.Second)
	go poller.Run(pollerCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestor API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		SupplierUC:    supplierUC,
		EmployeeUC:    employeeUC,
		RoleUC:        roleUC,
		CategoryUC:    categoryUC,
		UnitUC:        unitUC,
		BankAccountUC: bankAccountUC,
		GoalUC:        goalUC,
		CompanyUC:     companyUC,
		InventoryUC:   inventoryUC,
		SaleUC:        saleUC,
		ReciboUC:      reciboUC,
		PurchaseUC:    purchaseUC,
		AbateUC:       abateUC,
		FinanceUC:     financeUC,
		FiscalUC:      fiscalUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
