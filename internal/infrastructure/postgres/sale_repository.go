package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, customer_id, condition, subtotal, discount, total, status, due_date,
	nfe_status, nfe_ref, nfe_chave, nfe_protocolo, nfe_danfe_url, nfe_xml_url, nfe_mensagem, nfe_updated_at,
	created_at, created_by`

// SaleRepo implementação de SaleRepository sobre PostgreSQL (usável com pool ou tx).
// O sub-registro fiscal (NFe) vive em colunas nfe_* da própria tabela sales.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de vendas. Passar pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.Condition, &s.Subtotal, &s.Discount, &s.Total, &s.Status, &s.DueDate,
		&s.NFe.Status, &s.NFe.Ref, &s.NFe.Chave, &s.NFe.Protocolo, &s.NFe.DANFEURL, &s.NFe.XMLURL,
		&s.NFe.Mensagem, &s.NFe.UpdatedAt,
		&s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste a cabeça de uma venda.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CustomerID, s.Condition, s.Subtotal, s.Discount, s.Total, s.Status, s.DueDate,
		s.NFe.Status, s.NFe.Ref, s.NFe.Chave, s.NFe.Protocolo, s.NFe.DANFEURL, s.NFe.XMLURL,
		s.NFe.Mensagem, s.NFe.UpdatedAt,
		s.CreatedAt, s.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha da venda.
func (r *SaleRepo) CreateItem(i *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.SaleID, i.ProductID, i.Quantity, i.UnitPrice, i.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtém uma venda por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetItems devolve as linhas da venda.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, unit_cost
		FROM sale_items WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var i entity.SaleItem
		if err := rows.Scan(&i.ID, &i.SaleID, &i.ProductID, &i.Quantity, &i.UnitPrice, &i.UnitCost); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// List devolve as vendas mais recentes primeiro.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateNFe substitui o sub-registro fiscal da venda.
func (r *SaleRepo) UpdateNFe(saleID string, nfe entity.SaleNFe) error {
	query := `
		UPDATE sales
		SET nfe_status = $2, nfe_ref = $3, nfe_chave = $4, nfe_protocolo = $5,
		    nfe_danfe_url = $6, nfe_xml_url = $7, nfe_mensagem = $8, nfe_updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		saleID, nfe.Status, nfe.Ref, nfe.Chave, nfe.Protocolo,
		nfe.DANFEURL, nfe.XMLURL, nfe.Mensagem, nfe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale nfe: %w", err)
	}
	return nil
}

// GetByNFeRef localiza a venda pela referência fiscal.
func (r *SaleRepo) GetByNFeRef(ref string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE nfe_ref = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by nfe ref: %w", err)
	}
	return s, nil
}

// ListByNFeStatus devolve vendas com o sub-registro fiscal no status dado.
func (r *SaleRepo) ListByNFeStatus(status string, limit int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE nfe_status = $1 ORDER BY nfe_updated_at ASC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales by nfe status: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// TotalBetween soma o total das vendas criadas no intervalo [from, to).
func (r *SaleRepo) TotalBetween(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}
