package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, document, ie, email, phone, logradouro, numero, bairro, municipio, uf, cep, codigo_municipio, status, created_at, updated_at`

// CustomerRepo implementação de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository constrói o adaptador de clientes. Passar pool ou tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Document, &c.IE, &c.Email, &c.Phone,
		&c.Logradouro, &c.Numero, &c.Bairro, &c.Municipio, &c.UF, &c.CEP,
		&c.CodigoMunicipio, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste um novo cliente. Document é único.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Document, c.IE, c.Email, c.Phone,
		c.Logradouro, c.Numero, c.Bairro, c.Municipio, c.UF, c.CEP,
		c.CodigoMunicipio, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtém um cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Update atualiza um cliente existente.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, document = $3, ie = $4, email = $5, phone = $6,
		    logradouro = $7, numero = $8, bairro = $9, municipio = $10, uf = $11,
		    cep = $12, codigo_municipio = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Document, c.IE, c.Email, c.Phone,
		c.Logradouro, c.Numero, c.Bairro, c.Municipio, c.UF,
		c.CEP, c.CodigoMunicipio, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// List devolve os clientes, ativos primeiro e nome ascendente.
func (r *CustomerRepo) List(includeInactive bool) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	if !includeInactive {
		query += ` WHERE status = 'ativo'`
	}
	query += ` ORDER BY (status <> 'ativo'), name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SetStatus troca o status ativo/inativo.
func (r *CustomerRepo) SetStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE customers SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("set customer status: %w", err)
	}
	return nil
}
