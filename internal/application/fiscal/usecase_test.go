package fiscal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/infrastructure/focusnfe"
	"github.com/gestorcampo/gestor-api/pkg/config"
	"github.com/gestorcampo/gestor-api/pkg/logger"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeProvider struct {
	emitirCalls   int
	cancelarCalls int
	excluirCalls  int
	lastRef       string
	lastHomolog   bool
	emitirResp    *focusnfe.Resposta
	consultarResp *focusnfe.Resposta
	pdf           []byte
}

func (f *fakeProvider) Emitir(_ context.Context, homolog bool, ref string, _ *focusnfe.NotaFiscal) (*focusnfe.Resposta, error) {
	f.emitirCalls++
	f.lastRef = ref
	f.lastHomolog = homolog
	if f.emitirResp != nil {
		return f.emitirResp, nil
	}
	return &focusnfe.Resposta{Ref: ref, Status: "processando_autorizacao"}, nil
}

func (f *fakeProvider) Consultar(_ context.Context, homolog bool, ref string) (*focusnfe.Resposta, error) {
	f.lastHomolog = homolog
	if f.consultarResp != nil {
		return f.consultarResp, nil
	}
	return &focusnfe.Resposta{Ref: ref, Status: "autorizado", CaminhoDANFE: "/arquivos/danfe.pdf"}, nil
}

func (f *fakeProvider) Cancelar(_ context.Context, homolog bool, ref, _ string) (*focusnfe.Resposta, error) {
	f.cancelarCalls++
	f.lastHomolog = homolog
	return &focusnfe.Resposta{Ref: ref, Status: "cancelado", MensagemSefaz: "Evento registrado"}, nil
}

func (f *fakeProvider) Excluir(_ context.Context, _ bool, ref string) error {
	f.excluirCalls++
	return nil
}

func (f *fakeProvider) BaixarDocumento(_ context.Context, homolog bool, _ string) ([]byte, string, error) {
	f.lastHomolog = homolog
	return f.pdf, "application/pdf", nil
}

type fakeSales struct {
	sales map[string]*entity.Sale
}

func (f *fakeSales) Create(s *entity.Sale) error        { f.sales[s.ID] = s; return nil }
func (f *fakeSales) CreateItem(*entity.SaleItem) error  { return nil }
func (f *fakeSales) GetByID(id string) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (f *fakeSales) GetItems(string) ([]*entity.SaleItem, error) { return nil, nil }
func (f *fakeSales) List(int, int) ([]*entity.Sale, error)       { return nil, nil }
func (f *fakeSales) UpdateNFe(saleID string, nfe entity.SaleNFe) error {
	f.sales[saleID].NFe = nfe
	return nil
}
func (f *fakeSales) GetByNFeRef(ref string) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.NFe.Ref == ref {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeSales) ListByNFeStatus(status string, _ int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		if s.NFe.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeSales) TotalBetween(time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func testConfig() config.NFEConfig {
	return config.NFEConfig{
		Ambiente:         "producao",
		URLProducao:      "https://api.exemplo",
		TokenProducao:    "token-prod",
		URLHomologacao:   "https://homolog.exemplo",
		TokenHomologacao: "token-homolog",
	}
}

func emitirRequest(saleID string) *dto.NFeEmitirRequest {
	return &dto.NFeEmitirRequest{
		Venda: &dto.SaleResponse{
			ID:       saleID,
			Subtotal: decimal.NewFromInt(100),
			Total:    decimal.NewFromInt(100),
			Items: []dto.SaleItemResponse{
				{ProductID: "p1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
			},
		},
		Empresa: &dto.CompanyResponse{
			RazaoSocial:      "Gestor Campo LTDA",
			CNPJ:             "11.222.333/0001-81",
			IE:               "123456789",
			RegimeTributario: "1",
			Municipio:        "Campo Grande",
			UF:               "MS",
			CEP:              "79000-000",
		},
		Cliente: &dto.CustomerResponse{
			Name:     "João da Silva",
			Document: "529.982.247-25",
		},
		TodosProdutos: []*dto.ProductResponse{
			{ID: "p1", Name: "Picanha", UnitID: "u1", NCM: "02013000", CFOP: "5102"},
		},
		TodasUnidades: []*dto.UnitResponse{
			{ID: "u1", Sigla: "KG"},
		},
	}
}

func newFiscalFixture() (*UseCase, *fakeProvider, *fakeSales) {
	provider := &fakeProvider{}
	sales := &fakeSales{sales: map[string]*entity.Sale{
		"venda-1": {ID: "venda-1", NFe: entity.SaleNFe{Status: entity.NFeStatusNaoEmitida}},
	}}
	uc := NewUseCase(testConfig(), provider, sales, events.NewNotifier(),
		logger.New(logger.Config{Env: "production", Level: "error"}))
	return uc, provider, sales
}

// ─────────────────────────────────────────────────────────────────────────────
// Emissão
// ─────────────────────────────────────────────────────────────────────────────

func TestEmitir_AtualizaSubRegistroDaVenda(t *testing.T) {
	uc, provider, sales := newFiscalFixture()

	out, err := uc.Emitir(context.Background(), emitirRequest("venda-1"))
	require.NoError(t, err)

	assert.Equal(t, 1, provider.emitirCalls)
	assert.Equal(t, "venda-1", provider.lastRef, "a referência é o identificador da venda")
	assert.False(t, provider.lastHomolog, "ambiente producao configurado")
	assert.Equal(t, entity.NFeStatusProcessando, out.Status)
	assert.Equal(t, entity.NFeStatusProcessando, sales.sales["venda-1"].NFe.Status)
	assert.Equal(t, "venda-1", sales.sales["venda-1"].NFe.Ref)
}

// Emitir duas vezes para a mesma venda: a segunda chamada devolve o resultado
// existente sem nova emissão no provedor.
func TestEmitir_Idempotente(t *testing.T) {
	uc, provider, _ := newFiscalFixture()

	first, err := uc.Emitir(context.Background(), emitirRequest("venda-1"))
	require.NoError(t, err)
	second, err := uc.Emitir(context.Background(), emitirRequest("venda-1"))
	require.NoError(t, err)

	assert.Equal(t, 1, provider.emitirCalls, "segunda chamada não fala com o provedor")
	assert.Equal(t, first.Ref, second.Ref)
	assert.Equal(t, first.Status, second.Status)
}

func TestEmitir_PayloadIncompleto(t *testing.T) {
	uc, provider, _ := newFiscalFixture()

	in := emitirRequest("venda-1")
	in.Empresa = nil
	_, err := uc.Emitir(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, provider.emitirCalls)
}

func TestEmitir_ProdutoSemCodigosFiscais(t *testing.T) {
	uc, provider, _ := newFiscalFixture()

	in := emitirRequest("venda-1")
	in.TodosProdutos[0].NCM = ""
	_, err := uc.Emitir(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "NCM")
	assert.Zero(t, provider.emitirCalls)
}

// Rejeição que chega sob HTTP 2xx com o erro no corpo deve virar erro
// normalizado, nunca resposta de sucesso.
func TestEmitir_RejeicaoNoCorpoViraErro(t *testing.T) {
	uc, provider, sales := newFiscalFixture()
	provider.emitirResp = &focusnfe.Resposta{
		Ref:           "venda-1",
		Status:        "erro_autorizacao",
		MensagemSefaz: "Rejeicao: CNPJ do emitente invalido",
	}

	out, err := uc.Emitir(context.Background(), emitirRequest("venda-1"))
	require.Error(t, err)
	assert.Nil(t, out)

	var pe *focusnfe.ErroProvedor
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Mensagem, "Rejeicao: CNPJ do emitente invalido")

	nfe := sales.sales["venda-1"].NFe
	assert.Equal(t, entity.NFeStatusRejeitado, nfe.Status)
	assert.Contains(t, nfe.Mensagem, "Rejeicao")
}

func TestEmitir_SemCredenciais(t *testing.T) {
	provider := &fakeProvider{}
	sales := &fakeSales{sales: map[string]*entity.Sale{}}
	uc := NewUseCase(config.NFEConfig{Ambiente: "producao"}, provider, sales,
		events.NewNotifier(), logger.New(logger.Config{Env: "production", Level: "error"}))

	_, err := uc.Emitir(context.Background(), emitirRequest("venda-1"))
	assert.ErrorIs(t, err, ErrNaoConfigurado)
	assert.Zero(t, provider.emitirCalls)
}

// ─────────────────────────────────────────────────────────────────────────────
// Cancelamento
// ─────────────────────────────────────────────────────────────────────────────

// Justificativa com menos de 15 caracteres é rejeitada antes de qualquer
// chamada ao provedor.
func TestCancelar_JustificativaCurtaNaoChamaProvedor(t *testing.T) {
	uc, provider, _ := newFiscalFixture()

	_, err := uc.Cancelar(context.Background(), dto.NFeCancelarRequest{
		Ref:           "venda-1",
		Justificativa: "0123456789", // 10 caracteres
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, provider.cancelarCalls)
}

func TestCancelar_JustificativaValidaCancelaEAtualizaVenda(t *testing.T) {
	uc, provider, sales := newFiscalFixture()
	sales.sales["venda-1"].NFe = entity.SaleNFe{Status: entity.NFeStatusAutorizado, Ref: "venda-1"}

	out, err := uc.Cancelar(context.Background(), dto.NFeCancelarRequest{
		Ref:           "venda-1",
		Justificativa: "cliente desistiu da compra",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, provider.cancelarCalls)
	assert.Equal(t, "cancelado", out.Status)
	assert.Equal(t, entity.NFeStatusCancelado, sales.sales["venda-1"].NFe.Status)
}

func TestCancelar_JustificativaConta15Runas(t *testing.T) {
	uc, provider, _ := newFiscalFixture()

	// 15 runas com acentos: válida mesmo com len() em bytes maior.
	justificativa := strings.Repeat("ã", 15)
	_, err := uc.Cancelar(context.Background(), dto.NFeCancelarRequest{
		Ref:           "venda-1",
		Justificativa: justificativa,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, provider.cancelarCalls)
}

// ─────────────────────────────────────────────────────────────────────────────
// Consulta, preview e DANFE
// ─────────────────────────────────────────────────────────────────────────────

func TestConsultar_NormalizaCamposEAtualizaVenda(t *testing.T) {
	uc, provider, sales := newFiscalFixture()
	sales.sales["venda-1"].NFe = entity.SaleNFe{Status: entity.NFeStatusProcessando, Ref: "venda-1"}
	provider.consultarResp = &focusnfe.Resposta{
		Ref:             "venda-1",
		Status:          "autorizado",
		ChaveNFe:        "35240811222333000181550010000000011000000010",
		NumeroProtocolo: "135240000000001",
		CaminhoDANFE:    "/arquivos/danfe.pdf",
		CaminhoXML:      "/arquivos/nota.xml",
		MensagemSefaz:   "Autorizado o uso da NF-e",
	}

	out, err := uc.Consultar(context.Background(), "venda-1")
	require.NoError(t, err)
	assert.Equal(t, "autorizado", out.Status)
	assert.Equal(t, "/arquivos/danfe.pdf", out.URLDANFE)
	assert.Equal(t, "135240000000001", out.Protocolo)
	assert.Equal(t, entity.NFeStatusAutorizado, sales.sales["venda-1"].NFe.Status)
}

// Preview: força homologação independente do ambiente global, usa referência
// temporária, exclui o registro no provedor e devolve só os bytes.
func TestPreview_ForcaHomologacaoEExcluiRegistro(t *testing.T) {
	uc, provider, sales := newFiscalFixture()
	provider.emitirResp = &focusnfe.Resposta{Status: "autorizado", CaminhoDANFE: "/arquivos/danfe.pdf"}
	provider.pdf = []byte("%PDF-1.7 preview")

	data, err := uc.Preview(context.Background(), emitirRequest("venda-1"))
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.7 preview"), data)
	assert.True(t, provider.lastHomolog, "preview sempre emite contra homologação")
	assert.True(t, strings.HasPrefix(provider.lastRef, "preview-"))
	assert.Equal(t, 1, provider.excluirCalls, "registro temporário removido do provedor")
	assert.Equal(t, entity.NFeStatusNaoEmitida, sales.sales["venda-1"].NFe.Status,
		"preview não persiste estado")
}

func TestBaixarDANFE_ConsultaEDepoisBaixa(t *testing.T) {
	uc, provider, _ := newFiscalFixture()
	provider.pdf = []byte("%PDF-1.7 danfe")

	data, ct, err := uc.BaixarDANFE(context.Background(), "venda-1")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, []byte("%PDF-1.7 danfe"), data)
}

// ─────────────────────────────────────────────────────────────────────────────
// Poller
// ─────────────────────────────────────────────────────────────────────────────

func TestPoller_AtualizaVendasPendentes(t *testing.T) {
	uc, provider, sales := newFiscalFixture()
	sales.sales["venda-1"].NFe = entity.SaleNFe{Status: entity.NFeStatusProcessando, Ref: "venda-1"}
	provider.consultarResp = &focusnfe.Resposta{
		Ref: "venda-1", Status: "autorizado",
		ChaveNFe:        "35240811222333000181550010000000011000000010",
		NumeroProtocolo: "135240000000001",
	}

	p := NewPoller(uc, sales, events.NewNotifier(),
		logger.New(logger.Config{Env: "production", Level: "error"}), time.Minute)
	p.Tick(context.Background())

	assert.Equal(t, entity.NFeStatusAutorizado, sales.sales["venda-1"].NFe.Status)
	assert.Equal(t, "135240000000001", sales.sales["venda-1"].NFe.Protocolo)
}

func TestPoller_PendenteContinuaPendente(t *testing.T) {
	uc, provider, sales := newFiscalFixture()
	sales.sales["venda-1"].NFe = entity.SaleNFe{Status: entity.NFeStatusProcessando, Ref: "venda-1"}
	provider.consultarResp = &focusnfe.Resposta{Ref: "venda-1", Status: "processando_autorizacao"}

	p := NewPoller(uc, sales, events.NewNotifier(),
		logger.New(logger.Config{Env: "production", Level: "error"}), time.Minute)
	p.Tick(context.Background())

	assert.Equal(t, entity.NFeStatusProcessando, sales.sales["venda-1"].NFe.Status)
}
