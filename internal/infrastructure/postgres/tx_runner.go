package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestorcampo/gestor-api/internal/application/abate"
	"github.com/gestorcampo/gestor-api/internal/application/inventory"
	"github.com/gestorcampo/gestor-api/internal/application/purchases"
	"github.com/gestorcampo/gestor-api/internal/application/sales"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// Garante que TxRunner implementa as portas transacionais de cada área.
var (
	_ inventory.TxRunner    = (*TxRunner)(nil)
	_ sales.SaleTxRunner    = (*TxRunner)(nil)
	_ purchases.TxRunner    = (*TxRunner)(nil)
	_ abate.AbateTxRunner   = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, entregando
// repositórios atados à tx. Commit no sucesso, Rollback em qualquer erro:
// nenhuma escrita parcial fica visível.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação com os repositórios do motor de estoque.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia uma transação com os repositórios do registro de venda
// (estoque + venda + contas a receber).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	receivableRepo repository.ReceivableRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
		NewSaleRepository(tx),
		NewReceivableRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchase inicia uma transação com os repositórios do registro de compra
// (estoque + compra + contas a pagar).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	purchaseRepo repository.PurchaseRepository,
	payableRepo repository.PayableRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
		NewPurchaseRepository(tx),
		NewPayableRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAbate inicia uma transação com os repositórios do fluxo abate/produção.
func (r *TxRunner) RunAbate(ctx context.Context, fn func(
	abateRepo repository.AbateRepository,
	producaoRepo repository.ProducaoRepository,
	payableRepo repository.PayableRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewAbateRepository(tx),
		NewProducaoRepository(tx),
		NewPayableRepository(tx),
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
