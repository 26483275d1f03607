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

var (
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.UnitRepository        = (*UnitRepo)(nil)
	_ repository.BankAccountRepository = (*BankAccountRepo)(nil)
	_ repository.GoalRepository        = (*GoalRepo)(nil)
	_ repository.CompanyRepository     = (*CompanyRepo)(nil)
)

// CategoryRepo implementação de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository constrói o adaptador de categorias.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste uma categoria.
func (r *CategoryRepo) Create(c *entity.Category) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO categories (id, name, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtém uma categoria por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, status, created_at, updated_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update atualiza o nome de uma categoria.
func (r *CategoryRepo) Update(c *entity.Category) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET name = $2, updated_at = $3 WHERE id = $1`,
		c.ID, c.Name, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List devolve as categorias, ativas primeiro e nome ascendente.
func (r *CategoryRepo) List(includeInactive bool) ([]*entity.Category, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM categories`
	if !includeInactive {
		query += ` WHERE status = 'ativo'`
	}
	query += ` ORDER BY (status <> 'ativo'), name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SetStatus troca o status ativo/inativo.
func (r *CategoryRepo) SetStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set category status: %w", err)
	}
	return nil
}

// UnitRepo implementação de UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository constrói o adaptador de unidades de medida.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste uma unidade de medida.
func (r *UnitRepo) Create(u *entity.Unit) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO units (id, name, sigla, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Sigla, u.Status, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtém uma unidade por ID.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, sigla, status, created_at, updated_at FROM units WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Sigla, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Update atualiza nome e sigla.
func (r *UnitRepo) Update(u *entity.Unit) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE units SET name = $2, sigla = $3, updated_at = $4 WHERE id = $1`,
		u.ID, u.Name, u.Sigla, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// List devolve as unidades, ativas primeiro e nome ascendente.
func (r *UnitRepo) List(includeInactive bool) ([]*entity.Unit, error) {
	query := `SELECT id, name, sigla, status, created_at, updated_at FROM units`
	if !includeInactive {
		query += ` WHERE status = 'ativo'`
	}
	query += ` ORDER BY (status <> 'ativo'), name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Sigla, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// SetStatus troca o status ativo/inativo.
func (r *UnitRepo) SetStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE units SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set unit status: %w", err)
	}
	return nil
}

// BankAccountRepo implementação de BankAccountRepository sobre PostgreSQL.
type BankAccountRepo struct {
	q Querier
}

// NewBankAccountRepository constrói o adaptador de contas bancárias.
func NewBankAccountRepository(q Querier) *BankAccountRepo {
	return &BankAccountRepo{q: q}
}

const bankAccountColumns = `id, name, bank, agency, number, balance, status, created_at, updated_at`

// Create persiste uma conta bancária.
func (r *BankAccountRepo) Create(b *entity.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.Bank, b.Agency, b.Number, b.Balance, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

// GetByID obtém uma conta por ID.
func (r *BankAccountRepo) GetByID(id string) (*entity.BankAccount, error) {
	var b entity.BankAccount
	err := r.q.QueryRow(context.Background(),
		`SELECT `+bankAccountColumns+` FROM bank_accounts WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Bank, &b.Agency, &b.Number, &b.Balance, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return &b, nil
}

// Update atualiza os dados cadastrais e o saldo.
func (r *BankAccountRepo) Update(b *entity.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET name = $2, bank = $3, agency = $4, number = $5, balance = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.Bank, b.Agency, b.Number, b.Balance, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	return nil
}

// List devolve as contas, ativas primeiro e nome ascendente.
func (r *BankAccountRepo) List(includeInactive bool) ([]*entity.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts`
	if !includeInactive {
		query += ` WHERE status = 'ativo'`
	}
	query += ` ORDER BY (status <> 'ativo'), name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.BankAccount
	for rows.Next() {
		var b entity.BankAccount
		if err := rows.Scan(&b.ID, &b.Name, &b.Bank, &b.Agency, &b.Number, &b.Balance,
			&b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// SetStatus troca o status ativo/inativo.
func (r *BankAccountRepo) SetStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bank_accounts SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set bank account status: %w", err)
	}
	return nil
}

// GoalRepo implementação de GoalRepository sobre PostgreSQL.
type GoalRepo struct {
	q Querier
}

// NewGoalRepository constrói o adaptador de metas mensais.
func NewGoalRepository(q Querier) *GoalRepo {
	return &GoalRepo{q: q}
}

// Create persiste uma meta. month_ref é único entre metas ativas.
func (r *GoalRepo) Create(g *entity.Goal) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO goals (id, month_ref, amount, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		g.ID, g.MonthRef, g.Amount, g.Status, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

// GetByID obtém uma meta por ID.
func (r *GoalRepo) GetByID(id string) (*entity.Goal, error) {
	var g entity.Goal
	err := r.q.QueryRow(context.Background(),
		`SELECT id, month_ref, amount, status, created_at, updated_at FROM goals WHERE id = $1`, id).
		Scan(&g.ID, &g.MonthRef, &g.Amount, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &g, nil
}

// GetByMonthRef obtém a meta ativa do mês ("2006-01").
func (r *GoalRepo) GetByMonthRef(monthRef string) (*entity.Goal, error) {
	var g entity.Goal
	err := r.q.QueryRow(context.Background(),
		`SELECT id, month_ref, amount, status, created_at, updated_at FROM goals WHERE month_ref = $1 AND status = 'ativo'`,
		monthRef).
		Scan(&g.ID, &g.MonthRef, &g.Amount, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goal by month: %w", err)
	}
	return &g, nil
}

// Update atualiza mês de referência e valor.
func (r *GoalRepo) Update(g *entity.Goal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE goals SET month_ref = $2, amount = $3, updated_at = $4 WHERE id = $1`,
		g.ID, g.MonthRef, g.Amount, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}

// List devolve as metas, ativas primeiro e mês descendente (mais recente no topo).
func (r *GoalRepo) List(includeInactive bool) ([]*entity.Goal, error) {
	query := `SELECT id, month_ref, amount, status, created_at, updated_at FROM goals`
	if !includeInactive {
		query += ` WHERE status = 'ativo'`
	}
	query += ` ORDER BY (status <> 'ativo'), month_ref DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Goal
	for rows.Next() {
		var g entity.Goal
		if err := rows.Scan(&g.ID, &g.MonthRef, &g.Amount, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// SetStatus troca o status ativo/inativo.
func (r *GoalRepo) SetStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE goals SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set goal status: %w", err)
	}
	return nil
}

// CompanyRepo implementação de CompanyRepository. A tabela company guarda um
// único registro com id fixo 'company'.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository constrói o adaptador do cadastro da empresa.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, razao_social, nome_fantasia, cnpj, ie, regime_tributario,
	logradouro, numero, bairro, municipio, uf, cep, codigo_municipio, email, phone, updated_at`

// Get devolve o cadastro da empresa, ou nil se ainda não preenchido.
func (r *CompanyRepo) Get() (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(context.Background(),
		`SELECT `+companyColumns+` FROM company WHERE id = 'company'`).
		Scan(&c.ID, &c.RazaoSocial, &c.NomeFantasia, &c.CNPJ, &c.IE, &c.RegimeTributario,
			&c.Logradouro, &c.Numero, &c.Bairro, &c.Municipio, &c.UF, &c.CEP,
			&c.CodigoMunicipio, &c.Email, &c.Phone, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Upsert grava o cadastro da empresa (insere na primeira vez, atualiza depois).
func (r *CompanyRepo) Upsert(c *entity.Company) error {
	query := `
		INSERT INTO company (` + companyColumns + `)
		VALUES ('company', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			razao_social = EXCLUDED.razao_social,
			nome_fantasia = EXCLUDED.nome_fantasia,
			cnpj = EXCLUDED.cnpj,
			ie = EXCLUDED.ie,
			regime_tributario = EXCLUDED.regime_tributario,
			logradouro = EXCLUDED.logradouro,
			numero = EXCLUDED.numero,
			bairro = EXCLUDED.bairro,
			municipio = EXCLUDED.municipio,
			uf = EXCLUDED.uf,
			cep = EXCLUDED.cep,
			codigo_municipio = EXCLUDED.codigo_municipio,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		c.RazaoSocial, c.NomeFantasia, c.CNPJ, c.IE, c.RegimeTributario,
		c.Logradouro, c.Numero, c.Bairro, c.Municipio, c.UF, c.CEP,
		c.CodigoMunicipio, c.Email, c.Phone, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert company: %w", err)
	}
	return nil
}
