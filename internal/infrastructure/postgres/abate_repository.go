package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

var (
	_ repository.AbateRepository    = (*AbateRepo)(nil)
	_ repository.ProducaoRepository = (*ProducaoRepo)(nil)
)

// AbateRepo implementação de AbateRepository sobre PostgreSQL.
type AbateRepo struct {
	q Querier
}

// NewAbateRepository constrói o adaptador de lotes de abate.
func NewAbateRepository(q Querier) *AbateRepo {
	return &AbateRepo{q: q}
}

const abateColumns = `id, supplier_id, date, animal_count, live_weight, total_cost,
	condition, due_date, status, created_at, created_by`

func scanAbate(row pgx.Row) (*entity.Abate, error) {
	var a entity.Abate
	err := row.Scan(&a.ID, &a.SupplierID, &a.Date, &a.AnimalCount, &a.LiveWeight,
		&a.TotalCost, &a.Condition, &a.DueDate, &a.Status, &a.CreatedAt, &a.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste um lote de abate.
func (r *AbateRepo) Create(a *entity.Abate) error {
	query := `
		INSERT INTO abates (` + abateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.SupplierID, a.Date, a.AnimalCount, a.LiveWeight, a.TotalCost,
		a.Condition, a.DueDate, a.Status, a.CreatedAt, a.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert abate: %w", err)
	}
	return nil
}

// GetByID obtém um lote por ID.
func (r *AbateRepo) GetByID(id string) (*entity.Abate, error) {
	a, err := scanAbate(r.q.QueryRow(context.Background(),
		`SELECT `+abateColumns+` FROM abates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get abate: %w", err)
	}
	return a, nil
}

// GetForUpdate lê o lote com FOR UPDATE. A produção verifica e troca o status
// sob esse bloqueio para impedir duas produções do mesmo lote.
func (r *AbateRepo) GetForUpdate(id string) (*entity.Abate, error) {
	a, err := scanAbate(r.q.QueryRow(context.Background(),
		`SELECT `+abateColumns+` FROM abates WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get abate for update: %w", err)
	}
	return a, nil
}

// SetStatus troca o status do lote (aberto -> processado).
func (r *AbateRepo) SetStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE abates SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set abate status: %w", err)
	}
	return nil
}

// List devolve os lotes por data descendente, paginados.
func (r *AbateRepo) List(limit, offset int) ([]*entity.Abate, error) {
	query := `SELECT ` + abateColumns + ` FROM abates ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list abates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Abate
	for rows.Next() {
		a, err := scanAbate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan abate: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ProducaoRepo implementação de ProducaoRepository sobre PostgreSQL.
type ProducaoRepo struct {
	q Querier
}

// NewProducaoRepository constrói o adaptador de produções.
func NewProducaoRepository(q Querier) *ProducaoRepo {
	return &ProducaoRepo{q: q}
}

// Create persiste o cabeçalho de uma produção.
func (r *ProducaoRepo) Create(p *entity.Producao) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO producoes (id, abate_id, created_at, created_by) VALUES ($1, $2, $3, $4)`,
		p.ID, p.AbateID, p.CreatedAt, p.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert producao: %w", err)
	}
	return nil
}

// CreateItem persiste um item de produção.
func (r *ProducaoRepo) CreateItem(i *entity.ProducaoItem) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO producao_items (id, producao_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
		i.ID, i.ProducaoID, i.ProductID, i.Quantity)
	if err != nil {
		return fmt.Errorf("insert producao item: %w", err)
	}
	return nil
}

// GetByID obtém uma produção por ID.
func (r *ProducaoRepo) GetByID(id string) (*entity.Producao, error) {
	var p entity.Producao
	err := r.q.QueryRow(context.Background(),
		`SELECT id, abate_id, created_at, created_by FROM producoes WHERE id = $1`, id).
		Scan(&p.ID, &p.AbateID, &p.CreatedAt, &p.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producao: %w", err)
	}
	return &p, nil
}

// GetItems devolve os itens de uma produção.
func (r *ProducaoRepo) GetItems(producaoID string) ([]*entity.ProducaoItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, producao_id, product_id, quantity FROM producao_items WHERE producao_id = $1`, producaoID)
	if err != nil {
		return nil, fmt.Errorf("get producao items: %w", err)
	}
	defer rows.Close()
	var items []*entity.ProducaoItem
	for rows.Next() {
		var i entity.ProducaoItem
		if err := rows.Scan(&i.ID, &i.ProducaoID, &i.ProductID, &i.Quantity); err != nil {
			return nil, fmt.Errorf("scan producao item: %w", err)
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

// ListByAbate devolve as produções de um lote de abate.
func (r *ProducaoRepo) ListByAbate(abateID string) ([]*entity.Producao, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, abate_id, created_at, created_by FROM producoes WHERE abate_id = $1 ORDER BY created_at DESC`, abateID)
	if err != nil {
		return nil, fmt.Errorf("list producoes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producao
	for rows.Next() {
		var p entity.Producao
		if err := rows.Scan(&p.ID, &p.AbateID, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan producao: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
