package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

var (
	_ repository.PayableRepository    = (*PayableRepo)(nil)
	_ repository.ReceivableRepository = (*ReceivableRepo)(nil)
)

// PayableRepo implementação de PayableRepository sobre PostgreSQL (usável com pool ou tx).
type PayableRepo struct {
	q Querier
}

// NewPayableRepository constrói o adaptador de contas a pagar. Passar pool ou tx (Querier).
func NewPayableRepository(q Querier) *PayableRepo {
	return &PayableRepo{q: q}
}

const payableColumns = `id, description, amount, due_date, status, paid_at, supplier_id, purchase_id, abate_id, created_at`

// Create persiste uma conta a pagar.
func (r *PayableRepo) Create(p *entity.Payable) error {
	query := `
		INSERT INTO payables (` + payableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Description, p.Amount, p.DueDate, p.Status, p.PaidAt,
		p.SupplierID, p.PurchaseID, p.AbateID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payable: %w", err)
	}
	return nil
}

// GetByID obtém uma conta a pagar por ID.
func (r *PayableRepo) GetByID(id string) (*entity.Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables WHERE id = $1`
	var p entity.Payable
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Description, &p.Amount, &p.DueDate, &p.Status, &p.PaidAt,
		&p.SupplierID, &p.PurchaseID, &p.AbateID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payable: %w", err)
	}
	return &p, nil
}

// List devolve contas a pagar por vencimento ascendente, filtrando por status quando não vazio.
func (r *PayableRepo) List(status string, limit, offset int) ([]*entity.Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY due_date ASC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY due_date ASC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payable
	for rows.Next() {
		var p entity.Payable
		if err := rows.Scan(&p.ID, &p.Description, &p.Amount, &p.DueDate, &p.Status, &p.PaidAt,
			&p.SupplierID, &p.PurchaseID, &p.AbateID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payable: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Settle marca a conta como paga (baixa).
func (r *PayableRepo) Settle(id string, paidAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE payables SET status = 'pago', paid_at = $2 WHERE id = $1`,
		id, paidAt,
	)
	if err != nil {
		return fmt.Errorf("settle payable: %w", err)
	}
	return nil
}

// ReceivableRepo implementação de ReceivableRepository sobre PostgreSQL (usável com pool ou tx).
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository constrói o adaptador de contas a receber. Passar pool ou tx (Querier).
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

const receivableColumns = `id, description, amount, due_date, status, paid_at, customer_id, sale_id, created_at`

// Create persiste uma conta a receber.
func (r *ReceivableRepo) Create(c *entity.Receivable) error {
	query := `
		INSERT INTO receivables (` + receivableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Description, c.Amount, c.DueDate, c.Status, c.PaidAt,
		c.CustomerID, c.SaleID, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receivable: %w", err)
	}
	return nil
}

// GetByID obtém uma conta a receber por ID.
func (r *ReceivableRepo) GetByID(id string) (*entity.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE id = $1`
	var c entity.Receivable
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Description, &c.Amount, &c.DueDate, &c.Status, &c.PaidAt,
		&c.CustomerID, &c.SaleID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receivable: %w", err)
	}
	return &c, nil
}

// List devolve contas a receber por vencimento ascendente, filtrando por status quando não vazio.
func (r *ReceivableRepo) List(status string, limit, offset int) ([]*entity.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY due_date ASC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY due_date ASC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receivable
	for rows.Next() {
		var c entity.Receivable
		if err := rows.Scan(&c.ID, &c.Description, &c.Amount, &c.DueDate, &c.Status, &c.PaidAt,
			&c.CustomerID, &c.SaleID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Settle marca a conta como recebida (baixa).
func (r *ReceivableRepo) Settle(id string, paidAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE receivables SET status = 'pago', paid_at = $2 WHERE id = $1`,
		id, paidAt,
	)
	if err != nil {
		return fmt.Errorf("settle receivable: %w", err)
	}
	return nil
}
