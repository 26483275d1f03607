package http

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorcampo/gestor-api/internal/application/auth"
	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/application/fiscal"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/infrastructure/focusnfe"
	"github.com/gestorcampo/gestor-api/pkg/config"
	"github.com/gestorcampo/gestor-api/pkg/jwt"
	"github.com/gestorcampo/gestor-api/pkg/logger"
)

const testSecret = "segredo-de-teste"

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeProvider struct {
	emitirCalls   int
	consultaCalls int
	cancelCalls   int
	excluirCalls  int

	consultaResp *focusnfe.Resposta
	consultaErr  error
	documento    []byte
}

func (f *fakeProvider) Emitir(_ context.Context, _ bool, ref string, _ *focusnfe.NotaFiscal) (*focusnfe.Resposta, error) {
	f.emitirCalls++
	return &focusnfe.Resposta{Ref: ref, Status: entity.NFeStatusProcessando}, nil
}

func (f *fakeProvider) Consultar(_ context.Context, _ bool, ref string) (*focusnfe.Resposta, error) {
	f.consultaCalls++
	if f.consultaErr != nil {
		return nil, f.consultaErr
	}
	if f.consultaResp != nil {
		return f.consultaResp, nil
	}
	return &focusnfe.Resposta{Ref: ref, Status: entity.NFeStatusAutorizado}, nil
}

func (f *fakeProvider) Cancelar(_ context.Context, _ bool, ref, _ string) (*focusnfe.Resposta, error) {
	f.cancelCalls++
	return &focusnfe.Resposta{Ref: ref, Status: entity.NFeStatusCancelado}, nil
}

func (f *fakeProvider) Excluir(context.Context, bool, string) error {
	f.excluirCalls++
	return nil
}

func (f *fakeProvider) BaixarDocumento(context.Context, bool, string) ([]byte, string, error) {
	if f.documento != nil {
		return f.documento, "application/pdf", nil
	}
	return []byte("%PDF-1.7 fake"), "application/pdf", nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func (f *fakeSaleRepo) Create(s *entity.Sale) error      { f.sales[s.ID] = s; return nil }
func (f *fakeSaleRepo) CreateItem(*entity.SaleItem) error { return nil }
func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
func (f *fakeSaleRepo) GetItems(string) ([]*entity.SaleItem, error)     { return nil, nil }
func (f *fakeSaleRepo) List(int, int) ([]*entity.Sale, error)           { return nil, nil }
func (f *fakeSaleRepo) UpdateNFe(saleID string, nfe entity.SaleNFe) error {
	if s, ok := f.sales[saleID]; ok {
		s.NFe = nfe
	}
	return nil
}
func (f *fakeSaleRepo) GetByNFeRef(ref string) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.NFe.Ref == ref {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeSaleRepo) ListByNFeStatus(string, int) ([]*entity.Sale, error) { return nil, nil }
func (f *fakeSaleRepo) TotalBetween(time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubRoleRepo struct{ role *entity.Role }

func (s *stubRoleRepo) Create(*entity.Role) error { return nil }
func (s *stubRoleRepo) GetByID(string) (*entity.Role, error) {
	cp := *s.role
	return &cp, nil
}
func (s *stubRoleRepo) Update(*entity.Role) error        { return nil }
func (s *stubRoleRepo) List() ([]*entity.Role, error)    { return nil, nil }
func (s *stubRoleRepo) Delete(string) error              { return nil }

type stubUserRepo struct{}

func (stubUserRepo) Create(*entity.User) error                  { return nil }
func (stubUserRepo) GetByID(string) (*entity.User, error)       { return nil, nil }
func (stubUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (stubUserRepo) List(bool) ([]*entity.User, error)          { return nil, nil }
func (stubUserRepo) SetStatus(string, string) error             { return nil }
func (stubUserRepo) CountByRole(string) (int, error)            { return 0, nil }

// ─────────────────────────────────────────────────────────────────────────────
// Setup
// ─────────────────────────────────────────────────────────────────────────────

func nfeConfigurada() config.NFEConfig {
	return config.NFEConfig{
		Ambiente:         "homologacao",
		URLHomologacao:   "https://homologacao.example",
		TokenHomologacao: "token-homolog",
	}
}

func newTestApp(t *testing.T, cfg config.NFEConfig, provider fiscal.Provider, salesRepo *fakeSaleRepo) *fiber.App {
	t.Helper()

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	notifier := events.NewNotifier()
	fiscalUC := fiscal.NewUseCase(cfg, provider, salesRepo, notifier, log)

	// Cargo que permite tudo, para os testes de rota.
	role := &entity.Role{
		ID:   "role-admin",
		Name: "Administrador",
		Permissions: []entity.Permission{
			{Module: "vendas", Actions: []string{"ver", "criar", "editar"}},
		},
	}
	authUC := auth.NewUseCase(stubUserRepo{}, &stubRoleRepo{role: role}, config.JWTConfig{
		Secret: testSecret, Expiration: 60, Issuer: "teste",
	})

	app := fiber.New()
	Router(app, RouterDeps{
		FiscalUC:  fiscalUC,
		AuthUC:    authUC,
		JWTSecret: testSecret,
	})
	return app
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", "Teste", "role-admin", "teste", 60)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, authz string) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeErro(t *testing.T, resp *nethttp.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Cancelamento: justificativa validada antes de qualquer chamada ao provedor
// ─────────────────────────────────────────────────────────────────────────────

func TestCancelarJustificativaCurtaNaoChamaProvedor(t *testing.T) {
	provider := &fakeProvider{}
	app := newTestApp(t, nfeConfigurada(), provider, &fakeSaleRepo{sales: map[string]*entity.Sale{}})

	body := `{"ref":"venda-1","justificativa":"muito curta"}`
	resp := doJSON(t, app, fiber.MethodDelete, "/api/nfe/cancelar", body, bearerToken(t))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	erro := decodeErro(t, resp)
	assert.Contains(t, erro.Message, "justificativa")
	assert.Zero(t, provider.cancelCalls)
}

func TestCancelarJustificativaValida(t *testing.T) {
	provider := &fakeProvider{}
	salesRepo := &fakeSaleRepo{sales: map[string]*entity.Sale{
		"venda-1": {ID: "venda-1", NFe: entity.SaleNFe{Ref: "venda-1", Status: entity.NFeStatusAutorizado}},
	}}
	app := newTestApp(t, nfeConfigurada(), provider, salesRepo)

	body := `{"ref":"venda-1","justificativa":"cliente desistiu da compra"}`
	resp := doJSON(t, app, fiber.MethodDelete, "/api/nfe/cancelar", body, bearerToken(t))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, provider.cancelCalls)
	assert.Equal(t, entity.NFeStatusCancelado, salesRepo.sales["venda-1"].NFe.Status)
}

// ─────────────────────────────────────────────────────────────────────────────
// Credenciais ausentes: erro de configuração uniforme em todos os endpoints
// ─────────────────────────────────────────────────────────────────────────────

func TestSemCredenciaisErroDeConfiguracaoUniforme(t *testing.T) {
	provider := &fakeProvider{}
	app := newTestApp(t, config.NFEConfig{}, provider, &fakeSaleRepo{sales: map[string]*entity.Sale{}})
	authz := bearerToken(t)

	casos := []struct {
		method, path, body string
	}{
		{fiber.MethodPost, "/api/nfe/emitir", `{"venda":{"id":"v1","itens":[{}]},"empresa":{},"cliente":{},"todosProdutos":[{}],"todasUnidades":[{}]}`},
		{fiber.MethodGet, "/api/nfe/consultar?ref=v1", ""},
		{fiber.MethodDelete, "/api/nfe/cancelar", `{"ref":"v1","justificativa":"justificativa com tamanho valido"}`},
		{fiber.MethodPost, "/api/nfe/preview", `{"venda":{"id":"v1","itens":[{}]},"empresa":{},"cliente":{},"todosProdutos":[{}],"todasUnidades":[{}]}`},
	}
	for _, caso := range casos {
		resp := doJSON(t, app, caso.method, caso.path, caso.body, authz)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode, caso.path)
		erro := decodeErro(t, resp)
		assert.Contains(t, erro.Message, "não configurada", caso.path)
	}
	assert.Zero(t, provider.emitirCalls)
	assert.Zero(t, provider.consultaCalls)
	assert.Zero(t, provider.cancelCalls)
}

// ─────────────────────────────────────────────────────────────────────────────
// Consulta e espelhamento do status do provedor
// ─────────────────────────────────────────────────────────────────────────────

func TestConsultarSemRef(t *testing.T) {
	app := newTestApp(t, nfeConfigurada(), &fakeProvider{}, &fakeSaleRepo{sales: map[string]*entity.Sale{}})
	resp := doJSON(t, app, fiber.MethodGet, "/api/nfe/consultar", "", bearerToken(t))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestConsultarNormalizaCampos(t *testing.T) {
	provider := &fakeProvider{consultaResp: &focusnfe.Resposta{
		Ref:             "venda-1",
		Status:          entity.NFeStatusAutorizado,
		ChaveNFe:        "35260811222333000181550010000000011000000010",
		NumeroProtocolo: "135260000000001",
		CaminhoDANFE:    "/arquivos/danfe.pdf",
		CaminhoXML:      "/arquivos/nota.xml",
		MensagemSefaz:   "Autorizado o uso da NF-e",
	}}
	app := newTestApp(t, nfeConfigurada(), provider, &fakeSaleRepo{sales: map[string]*entity.Sale{}})

	resp := doJSON(t, app, fiber.MethodGet, "/api/nfe/consultar?ref=venda-1", "", bearerToken(t))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.NFeConsultarResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "venda-1", out.Ref)
	assert.Equal(t, entity.NFeStatusAutorizado, out.Status)
	assert.Equal(t, "/arquivos/danfe.pdf", out.URLDANFE)
	assert.Equal(t, "/arquivos/nota.xml", out.URLXML)
	assert.Equal(t, "Autorizado o uso da NF-e", out.MensagemSefaz)
}

func TestErroDoProvedorEspelhaStatusHTTP(t *testing.T) {
	provider := &fakeProvider{consultaErr: &focusnfe.ErroProvedor{
		StatusCode: fiber.StatusNotFound,
		Mensagem:   "nota fiscal não encontrada",
	}}
	app := newTestApp(t, nfeConfigurada(), provider, &fakeSaleRepo{sales: map[string]*entity.Sale{}})

	resp := doJSON(t, app, fiber.MethodGet, "/api/nfe/consultar?ref=inexistente", "", bearerToken(t))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	erro := decodeErro(t, resp)
	assert.Equal(t, "nota fiscal não encontrada", erro.Message)
}

// ─────────────────────────────────────────────────────────────────────────────
// Preview e streaming do DANFE
// ─────────────────────────────────────────────────────────────────────────────

func TestPreviewDevolvePDFESoPDF(t *testing.T) {
	provider := &fakeProvider{
		consultaResp: &focusnfe.Resposta{Status: entity.NFeStatusAutorizado, CaminhoDANFE: "/arquivos/preview.pdf"},
		documento:    []byte("%PDF-1.7 preview"),
	}
	salesRepo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	app := newTestApp(t, nfeConfigurada(), provider, salesRepo)

	body := `{"venda":{"id":"v1","cliente_id":"c1","itens":[{"produto_id":"p1","quantidade":"1","preco_unitario":"10"}]},` +
		`"empresa":{"razao_social":"Empresa","cnpj":"11.222.333/0001-81","codigo_municipio":"3550308","uf":"SP","regime_tributario":"1","logradouro":"Rua A","numero":"1","bairro":"Centro","municipio":"São Paulo","cep":"01000-000"},` +
		`"cliente":{"id":"c1","nome":"Cliente","documento":"529.982.247-25","logradouro":"Rua B","numero":"2","bairro":"Centro","municipio":"São Paulo","uf":"SP","cep":"01000-001","codigo_municipio":"3550308"},` +
		`"todosProdutos":[{"id":"p1","nome":"Picanha","unidade_id":"u1","ncm":"02013000","cfop":"5102","preco":"10"}],` +
		`"todasUnidades":[{"id":"u1","nome":"Quilo","sigla":"KG"}]}`
	resp := doJSON(t, app, fiber.MethodPost, "/api/nfe/preview", body, bearerToken(t))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 preview", string(data))

	// O registro temporário é excluído e nada é persistido.
	assert.Equal(t, 1, provider.excluirCalls)
	assert.Empty(t, salesRepo.sales)
}

func TestPDFStreamInline(t *testing.T) {
	provider := &fakeProvider{
		consultaResp: &focusnfe.Resposta{Status: entity.NFeStatusAutorizado, CaminhoDANFE: "/arquivos/danfe.pdf"},
		documento:    []byte("%PDF-1.7 danfe"),
	}
	app := newTestApp(t, nfeConfigurada(), provider, &fakeSaleRepo{sales: map[string]*entity.Sale{}})

	// /pdf/:ref é público, não exige token.
	resp := doJSON(t, app, fiber.MethodGet, "/pdf/venda-1", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inline")
}

// ─────────────────────────────────────────────────────────────────────────────
// Autenticação
// ─────────────────────────────────────────────────────────────────────────────

func TestRotasProtegidasExigemToken(t *testing.T) {
	app := newTestApp(t, nfeConfigurada(), &fakeProvider{}, &fakeSaleRepo{sales: map[string]*entity.Sale{}})

	resp := doJSON(t, app, fiber.MethodGet, "/api/nfe/consultar?ref=v1", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/nfe/consultar?ref=v1", "", "Bearer token-invalido")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
