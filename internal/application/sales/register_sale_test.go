package sales

import (
	"context"
	"testing"
	"time"

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
// Fakes em memória. O runner restaura todo o estado quando o callback devolve
// erro, imitando o rollback da transação real.
// ─────────────────────────────────────────────────────────────────────────────

type memState struct {
	products    map[string]*entity.Product
	movements   []*entity.StockMovement
	sales       map[string]*entity.Sale
	saleItems   []*entity.SaleItem
	receivables []*entity.Receivable
}

func (s *memState) clone() *memState {
	cp := &memState{
		products:    make(map[string]*entity.Product, len(s.products)),
		movements:   append([]*entity.StockMovement(nil), s.movements...),
		sales:       make(map[string]*entity.Sale, len(s.sales)),
		saleItems:   append([]*entity.SaleItem(nil), s.saleItems...),
		receivables: append([]*entity.Receivable(nil), s.receivables...),
	}
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, v := range s.sales {
		c := *v
		cp.sales[id] = &c
	}
	return cp
}

type memProducts struct{ s *memState }

func (f *memProducts) Create(p *entity.Product) error { f.s.products[p.ID] = p; return nil }
func (f *memProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := f.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *memProducts) GetForUpdate(id string) (*entity.Product, error) { return f.GetByID(id) }
func (f *memProducts) Update(p *entity.Product) error                  { f.s.products[p.ID] = p; return nil }
func (f *memProducts) UpdateQuantity(id string, q decimal.Decimal) error {
	f.s.products[id].Quantity = q
	return nil
}
func (f *memProducts) List(bool) ([]*entity.Product, error) { return nil, nil }
func (f *memProducts) SetStatus(id, status string) error    { f.s.products[id].Status = status; return nil }

type memMovements struct{ s *memState }

func (f *memMovements) Create(m *entity.StockMovement) error {
	f.s.movements = append(f.s.movements, m)
	return nil
}
func (f *memMovements) List(int, int) ([]*entity.StockMovement, error) { return f.s.movements, nil }
func (f *memMovements) ListByProduct(string, int, int) ([]*entity.StockMovement, error) {
	return f.s.movements, nil
}

type memSales struct{ s *memState }

func (f *memSales) Create(sl *entity.Sale) error     { f.s.sales[sl.ID] = sl; return nil }
func (f *memSales) CreateItem(i *entity.SaleItem) error {
	f.s.saleItems = append(f.s.saleItems, i)
	return nil
}
func (f *memSales) GetByID(id string) (*entity.Sale, error) {
	sl, ok := f.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sl
	return &cp, nil
}
func (f *memSales) GetItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, i := range f.s.saleItems {
		if i.SaleID == saleID {
			out = append(out, i)
		}
	}
	return out, nil
}
func (f *memSales) List(int, int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sl := range f.s.sales {
		out = append(out, sl)
	}
	return out, nil
}
func (f *memSales) UpdateNFe(saleID string, nfe entity.SaleNFe) error {
	f.s.sales[saleID].NFe = nfe
	return nil
}
func (f *memSales) GetByNFeRef(ref string) (*entity.Sale, error) {
	for _, sl := range f.s.sales {
		if sl.NFe.Ref == ref {
			cp := *sl
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *memSales) ListByNFeStatus(status string, _ int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sl := range f.s.sales {
		if sl.NFe.Status == status {
			out = append(out, sl)
		}
	}
	return out, nil
}
func (f *memSales) TotalBetween(time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type memReceivables struct{ s *memState }

func (f *memReceivables) Create(r *entity.Receivable) error {
	f.s.receivables = append(f.s.receivables, r)
	return nil
}
func (f *memReceivables) GetByID(string) (*entity.Receivable, error)            { return nil, nil }
func (f *memReceivables) List(string, int, int) ([]*entity.Receivable, error)   { return nil, nil }
func (f *memReceivables) Settle(string, time.Time) error                        { return nil }

type memCustomers struct{ customers map[string]*entity.Customer }

func (f *memCustomers) Create(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *memCustomers) GetByID(id string) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (f *memCustomers) Update(*entity.Customer) error              { return nil }
func (f *memCustomers) List(bool) ([]*entity.Customer, error)      { return nil, nil }
func (f *memCustomers) SetStatus(string, string) error             { return nil }

type memSaleTx struct{ s *memState }

func (f *memSaleTx) RunSale(_ context.Context, fn func(
	repository.ProductRepository,
	repository.StockMovementRepository,
	repository.SaleRepository,
	repository.ReceivableRepository,
) error) error {
	snapshot := f.s.clone()
	if err := fn(&memProducts{f.s}, &memMovements{f.s}, &memSales{f.s}, &memReceivables{f.s}); err != nil {
		*f.s = *snapshot
		return err
	}
	return nil
}

func newSaleFixture() (*UseCase, *memState) {
	state := &memState{
		products: map[string]*entity.Product{
			"p1": {ID: "p1", Name: "Picanha", Cost: decimal.NewFromInt(30),
				Quantity: decimal.NewFromInt(10), Status: entity.StatusAtivo},
			"p2": {ID: "p2", Name: "Costela", Cost: decimal.NewFromInt(15),
				Quantity: decimal.Zero, Status: entity.StatusAtivo},
		},
		sales: map[string]*entity.Sale{},
	}
	customers := &memCustomers{customers: map[string]*entity.Customer{
		"c1": {ID: "c1", Name: "João da Silva", Status: entity.StatusAtivo},
	}}
	uc := NewUseCase(&memSaleTx{state}, &memSales{state}, customers, events.NewNotifier())
	return uc, state
}

// ─────────────────────────────────────────────────────────────────────────────
// Registro de venda
// ─────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_AVistaBaixaEstoqueEGravaTudo(t *testing.T) {
	uc, state := newSaleFixture()

	out, err := uc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1",
		Condition:  entity.PaymentAVista,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusPago, out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(150)))
	assert.True(t, state.products["p1"].Quantity.Equal(decimal.NewFromInt(7)))
	require.Len(t, state.movements, 1)
	assert.Equal(t, entity.MovementSaida, state.movements[0].Direction)
	assert.Contains(t, state.movements[0].Reason, "João da Silva")
	assert.Contains(t, state.movements[0].Reason, out.ID)
	assert.Empty(t, state.receivables, "venda à vista não gera conta a receber")
}

func TestRegisterSale_APrazoCriaContaAReceber(t *testing.T) {
	uc, state := newSaleFixture()
	due := time.Now().AddDate(0, 1, 0)

	out, err := uc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1",
		Condition:  entity.PaymentAPrazo,
		DueDate:    &due,
		Discount:   decimal.NewFromInt(10),
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(60)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusPendente, out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(110)))
	require.Len(t, state.receivables, 1)
	assert.True(t, state.receivables[0].Amount.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, out.ID, state.receivables[0].SaleID)
	assert.Equal(t, entity.FinanceStatusPendente, state.receivables[0].Status)
}

// Dois itens, o segundo sem estoque: nada é gravado — nem venda, nem baixa do
// primeiro item, nem movimentações.
func TestRegisterSale_FalhaNoSegundoItemNaoDeixaEscritaParcial(t *testing.T) {
	uc, state := newSaleFixture()

	_, err := uc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1",
		Condition:  entity.PaymentAVista,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(50)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(40)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Costela", "o erro nomeia o primeiro produto que falhou")

	assert.True(t, state.products["p1"].Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, state.products["p2"].Quantity.IsZero())
	assert.Empty(t, state.sales)
	assert.Empty(t, state.saleItems)
	assert.Empty(t, state.movements)
	assert.Empty(t, state.receivables)
}

func TestRegisterSale_CongelaCustoUnitarioDoItem(t *testing.T) {
	uc, state := newSaleFixture()

	out, err := uc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "c1",
		Condition:  entity.PaymentAVista,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	require.Len(t, state.saleItems, 1)
	assert.True(t, state.saleItems[0].UnitCost.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, out.ID, state.saleItems[0].SaleID)
}

func TestRegisterSale_Validacao(t *testing.T) {
	uc, _ := newSaleFixture()
	due := time.Now()

	cases := []struct {
		name string
		in   dto.RegisterSaleRequest
	}{
		{"sem itens", dto.RegisterSaleRequest{CustomerID: "c1", Condition: entity.PaymentAVista}},
		{"condicao invalida", dto.RegisterSaleRequest{CustomerID: "c1", Condition: "fiado",
			Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}}}},
		{"a prazo sem vencimento", dto.RegisterSaleRequest{CustomerID: "c1", Condition: entity.PaymentAPrazo,
			Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}}}},
		{"quantidade zero", dto.RegisterSaleRequest{CustomerID: "c1", Condition: entity.PaymentAVista,
			Items: []dto.SaleItemRequest{{ProductID: "p1", UnitPrice: decimal.NewFromInt(10)}}}},
		{"desconto maior que subtotal", dto.RegisterSaleRequest{CustomerID: "c1", Condition: entity.PaymentAPrazo,
			DueDate: &due, Discount: decimal.NewFromInt(500),
			Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterSale(context.Background(), "u1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterSale_ClienteInexistente(t *testing.T) {
	uc, state := newSaleFixture()

	_, err := uc.RegisterSale(context.Background(), "u1", dto.RegisterSaleRequest{
		CustomerID: "fantasma",
		Condition:  entity.PaymentAVista,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, state.sales)
}
