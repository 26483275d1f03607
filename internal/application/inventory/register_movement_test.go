package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes em memória com semântica transacional: o runner restaura o estado
// anterior quando o callback devolve erro, imitando o rollback.
// ─────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return f.GetByID(id) }
func (f *fakeProductRepo) Update(p *entity.Product) error                  { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) UpdateQuantity(id string, q decimal.Decimal) error {
	f.products[id].Quantity = q
	return nil
}
func (f *fakeProductRepo) List(bool) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) SetStatus(id, status string) error {
	f.products[id].Status = status
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}
func (f *fakeMovementRepo) List(int, int) ([]*entity.StockMovement, error) {
	return f.movements, nil
}
func (f *fakeMovementRepo) ListByProduct(productID string, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	products *fakeProductRepo
	movs     *fakeMovementRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	snapshot := make(map[string]*entity.Product, len(f.products.products))
	for id, p := range f.products.products {
		cp := *p
		snapshot[id] = &cp
	}
	movCount := len(f.movs.movements)

	if err := fn(f.products, f.movs); err != nil {
		f.products.products = snapshot
		f.movs.movements = f.movs.movements[:movCount]
		return err
	}
	return nil
}

func newFixture(qty int64) (*UseCase, *fakeProductRepo, *fakeMovementRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Picanha", Type: entity.ProductTypeVenda,
			Quantity: decimal.NewFromInt(qty), Status: entity.StatusAtivo},
	}}
	movs := &fakeMovementRepo{}
	uc := NewUseCase(&fakeTxRunner{products: products, movs: movs}, movs, events.NewNotifier())
	return uc, products, movs
}

// Saída de 3 sobre estoque 10: quantidade final 7 e um registro de auditoria.
func TestRegisterMovement_SaidaAtualizaEstoque(t *testing.T) {
	uc, products, movs := newFixture(10)

	out, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1",
		Quantity:  decimal.NewFromInt(3),
		Direction: entity.MovementSaida,
		Reason:    "venda",
	})
	require.NoError(t, err)

	assert.True(t, products.products["p1"].Quantity.Equal(decimal.NewFromInt(7)))
	require.Len(t, movs.movements, 1)
	assert.Equal(t, entity.MovementSaida, movs.movements[0].Direction)
	assert.True(t, movs.movements[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "u1", out.ActorID)
}

// Saída maior que o estoque: aborta com ErrInsufficientStock e nada muda.
func TestRegisterMovement_EstoqueInsuficienteNaoEscreveNada(t *testing.T) {
	uc, products, movs := newFixture(2)

	_, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1",
		Quantity:  decimal.NewFromInt(5),
		Direction: entity.MovementSaida,
		Reason:    "venda",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, products.products["p1"].Quantity.Equal(decimal.NewFromInt(2)))
	assert.Empty(t, movs.movements)
}

func TestRegisterMovement_EntradaSomaQuantidade(t *testing.T) {
	uc, products, _ := newFixture(4)

	_, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1",
		Quantity:  decimal.NewFromInt(6),
		Direction: entity.MovementEntrada,
		Reason:    "compra",
	})
	require.NoError(t, err)
	assert.True(t, products.products["p1"].Quantity.Equal(decimal.NewFromInt(10)))
}

// Saída que zera o estoque é permitida: o invariante é quantidade >= 0.
func TestRegisterMovement_SaidaAteZeroEhPermitida(t *testing.T) {
	uc, products, _ := newFixture(5)

	_, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1",
		Quantity:  decimal.NewFromInt(5),
		Direction: entity.MovementSaida,
		Reason:    "ajuste",
	})
	require.NoError(t, err)
	assert.True(t, products.products["p1"].Quantity.IsZero())
}

func TestRegisterMovement_Validacao(t *testing.T) {
	uc, _, _ := newFixture(10)

	cases := []struct {
		name string
		in   dto.RegisterMovementRequest
	}{
		{"sem produto", dto.RegisterMovementRequest{Quantity: decimal.NewFromInt(1), Direction: entity.MovementSaida}},
		{"quantidade zero", dto.RegisterMovementRequest{ProductID: "p1", Direction: entity.MovementSaida}},
		{"quantidade negativa", dto.RegisterMovementRequest{ProductID: "p1", Quantity: decimal.NewFromInt(-2), Direction: entity.MovementEntrada}},
		{"direcao invalida", dto.RegisterMovementRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1), Direction: "lateral"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(context.Background(), "u1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterMovement_ProdutoInexistente(t *testing.T) {
	uc, _, movs := newFixture(10)

	_, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "nao-existe",
		Quantity:  decimal.NewFromInt(1),
		Direction: entity.MovementSaida,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movs.movements)
}
