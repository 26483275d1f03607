package usecase

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes em memória. List imita a ordenação dos repositórios Postgres:
// ativos primeiro, nome ascendente.
// ─────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (f *fakeCustomerRepo) Update(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) List(includeInactive bool) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if !includeInactive && c.Status != entity.StatusAtivo {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].Status != entity.StatusAtivo) != (out[j].Status != entity.StatusAtivo) {
			return out[i].Status == entity.StatusAtivo
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
func (f *fakeCustomerRepo) SetStatus(id, status string) error {
	f.customers[id].Status = status
	return nil
}

type fakeRoleRepo struct {
	roles map[string]*entity.Role
}

func (f *fakeRoleRepo) Create(r *entity.Role) error { f.roles[r.ID] = r; return nil }
func (f *fakeRoleRepo) GetByID(id string) (*entity.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}
func (f *fakeRoleRepo) Update(r *entity.Role) error { f.roles[r.ID] = r; return nil }
func (f *fakeRoleRepo) List() ([]*entity.Role, error) {
	var out []*entity.Role
	for _, r := range f.roles {
		out = append(out, r)
	}
	return out, nil
}
func (f *fakeRoleRepo) Delete(id string) error { delete(f.roles, id); return nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) List(bool) ([]*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) SetStatus(id, status string) error {
	f.users[id].Status = status
	return nil
}
func (f *fakeUserRepo) CountByRole(roleID string) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Clientes: máscara de documento e filtros de listagem
// ─────────────────────────────────────────────────────────────────────────────

func TestCustomerDocumentoMascaradoNaResposta(t *testing.T) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	uc := NewCustomerUseCase(repo, events.NewNotifier())

	// CPF entra mascarado, é persistido só com dígitos e volta mascarado.
	created, err := uc.Create(dto.CreateCustomerRequest{Name: "João Pereira", Document: "529.982.247-25"})
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", created.Document)
	assert.Equal(t, "52998224725", repo.customers[created.ID].Document)

	// CNPJ só com dígitos também volta mascarado.
	created2, err := uc.Create(dto.CreateCustomerRequest{Name: "Frigorífico Sul", Document: "11222333000181"})
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", created2.Document)
}

func TestCustomerDocumentoInvalidoRejeitado(t *testing.T) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	uc := NewCustomerUseCase(repo, events.NewNotifier())

	_, err := uc.Create(dto.CreateCustomerRequest{Name: "Fulano", Document: "111.111.111-11"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.customers)
}

func TestCustomerListFiltraInativosEBusca(t *testing.T) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	uc := NewCustomerUseCase(repo, events.NewNotifier())

	a, err := uc.Create(dto.CreateCustomerRequest{Name: "Antônio"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateCustomerRequest{Name: "Beatriz"})
	require.NoError(t, err)

	require.NoError(t, uc.SetStatus(a.ID, entity.StatusInativo))

	// Por padrão só os ativos aparecem.
	list, err := uc.List(false, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beatriz", list[0].Name)

	// includeInactive traz todos, ativos primeiro.
	list, err = uc.List(true, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Beatriz", list[0].Name)
	assert.Equal(t, "Antônio", list[1].Name)

	// Busca é insensível a acentos e caixa.
	list, err = uc.List(true, "antonio")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Antônio", list[0].Name)
}

func TestCustomerSetStatusInvalido(t *testing.T) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	uc := NewCustomerUseCase(repo, events.NewNotifier())

	err := uc.SetStatus("qualquer", "excluido")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Cargos: exclusão física bloqueada com usuários vinculados
// ─────────────────────────────────────────────────────────────────────────────

func TestRoleDeleteBloqueadoComUsuarios(t *testing.T) {
	roles := &fakeRoleRepo{roles: map[string]*entity.Role{}}
	users := &fakeUserRepo{users: map[string]*entity.User{}}
	uc := NewRoleUseCase(roles, users, events.NewNotifier())

	role, err := uc.Create(dto.CreateRoleRequest{Name: "Vendedor"})
	require.NoError(t, err)

	users.users["u1"] = &entity.User{ID: "u1", Name: "Maria", RoleID: role.ID, Status: entity.StatusAtivo}

	err = uc.Delete(role.ID)
	require.ErrorIs(t, err, domain.ErrRoleInUse)
	assert.Contains(t, roles.roles, role.ID)

	// Sem usuários vinculados a exclusão passa.
	delete(users.users, "u1")
	require.NoError(t, uc.Delete(role.ID))
	assert.NotContains(t, roles.roles, role.ID)
}

func TestRoleAllows(t *testing.T) {
	roles := &fakeRoleRepo{roles: map[string]*entity.Role{}}
	users := &fakeUserRepo{users: map[string]*entity.User{}}
	uc := NewRoleUseCase(roles, users, events.NewNotifier())

	role, err := uc.Create(dto.CreateRoleRequest{
		Name: "Estoquista",
		Permissions: []entity.Permission{
			{Module: "estoque", Actions: []string{"ver", "criar"}},
		},
	})
	require.NoError(t, err)

	got := roles.roles[role.ID]
	assert.True(t, got.Allows("estoque", "criar"))
	assert.False(t, got.Allows("estoque", "excluir"))
	assert.False(t, got.Allows("vendas", "ver"))
}
