package focusnfe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorcampo/gestor-api/pkg/config"
	"github.com/gestorcampo/gestor-api/pkg/logger"
)

func newTestClient(serverURL string) *Client {
	cfg := config.NFEConfig{
		Ambiente:         "producao",
		URLProducao:      serverURL,
		TokenProducao:    "token-prod",
		URLHomologacao:   serverURL,
		TokenHomologacao: "token-homolog",
	}
	return NewClient(cfg, logger.New(logger.Config{Env: "production", Level: "error"}))
}

// ─────────────────────────────────────────────────────────────────────────────
// Emissão e consulta
// ─────────────────────────────────────────────────────────────────────────────

func TestClient_EmitirEnviaBasicAuthEPayload(t *testing.T) {
	var gotUser, gotPath string
	var gotBody NotaFiscal
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Resposta{Ref: "venda-1", Status: "processando_autorizacao"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Emitir(context.Background(), false, "venda-1", &NotaFiscal{
		NaturezaOperacao: "Venda de mercadoria",
		CNPJEmitente:     "11222333000181",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-prod", gotUser, "token do ambiente selecionado vai no basic auth")
	assert.Equal(t, "/v2/nfe?ref=venda-1", gotPath)
	assert.Equal(t, "11222333000181", gotBody.CNPJEmitente)
	assert.Equal(t, "processando_autorizacao", resp.Status)
	assert.True(t, resp.Pendente())
}

func TestClient_HomologacaoUsaTokenDeHomologacao(t *testing.T) {
	var gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		_ = json.NewEncoder(w).Encode(Resposta{Ref: "preview-1", Status: "autorizado"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Consultar(context.Background(), true, "preview-1")
	require.NoError(t, err)
	assert.Equal(t, "token-homolog", gotUser)
}

func TestClient_ConsultarNormalizaCampos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/nfe/venda-9", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Resposta{
			Ref:             "venda-9",
			Status:          "autorizado",
			ChaveNFe:        "35240811222333000181550010000000011000000010",
			NumeroProtocolo: "135240000000001",
			CaminhoDANFE:    "/arquivos/danfe.pdf",
			CaminhoXML:      "/arquivos/nota.xml",
			MensagemSefaz:   "Autorizado o uso da NF-e",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Consultar(context.Background(), false, "venda-9")
	require.NoError(t, err)
	assert.Equal(t, "autorizado", resp.Status)
	assert.Len(t, resp.ChaveNFe, 44)
	assert.Equal(t, "/arquivos/danfe.pdf", resp.CaminhoDANFE)
}

// ─────────────────────────────────────────────────────────────────────────────
// Erros do provedor
// ─────────────────────────────────────────────────────────────────────────────

func TestClient_ErroHTTPViraErroProvedorComMensagemNormalizada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"codigo":"erro_validacao","erros":[{"campo":"cnpj_emitente","mensagem":"CNPJ inválido"},{"mensagem":"NCM obrigatório"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Emitir(context.Background(), false, "venda-2", &NotaFiscal{})
	require.Error(t, err)

	var pe *ErroProvedor
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusUnprocessableEntity, pe.StatusCode)
	assert.Contains(t, pe.Mensagem, "cnpj_emitente: CNPJ inválido")
	assert.Contains(t, pe.Mensagem, "NCM obrigatório")
	assert.NotEmpty(t, pe.Raw, "corpo original preservado para diagnóstico")
}

func TestClient_ErroPlanoUsaMensagemDireta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"codigo":"nao_encontrado","mensagem":"Nota fiscal não encontrada"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Consultar(context.Background(), false, "nao-existe")

	var pe *ErroProvedor
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusNotFound, pe.StatusCode)
	assert.Equal(t, "Nota fiscal não encontrada", pe.Mensagem)
}

func TestClient_RespostaNaoJSONEmErroHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Consultar(context.Background(), false, "venda-3")

	var pe *ErroProvedor
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusBadGateway, pe.StatusCode)
}

// ─────────────────────────────────────────────────────────────────────────────
// Cancelamento e download
// ─────────────────────────────────────────────────────────────────────────────

func TestClient_CancelarEnviaJustificativa(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(Resposta{Ref: "venda-4", Status: "cancelado", MensagemSefaz: "Evento registrado"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Cancelar(context.Background(), false, "venda-4", "cliente desistiu da compra")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "cliente desistiu da compra", gotBody["justificativa"])
	assert.Equal(t, "cancelado", resp.Status)
}

func TestClient_BaixarDocumentoDevolveBytesEContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/arquivos/danfe.pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	data, ct, err := c.BaixarDocumento(context.Background(), false, "arquivos/danfe.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, "%PDF-1.7 fake", string(data))
}

// ─────────────────────────────────────────────────────────────────────────────
// XML nfeProc
// ─────────────────────────────────────────────────────────────────────────────

const nfeProcXML = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe><infNFe Id="NFe35240811222333000181550010000000011000000010"></infNFe></NFe>
  <protNFe versao="4.00">
    <infProt>
      <chNFe>35240811222333000181550010000000011000000010</chNFe>
      <dhRecbto>2024-08-15T10:32:41-03:00</dhRecbto>
      <nProt>135240000000001</nProt>
      <cStat>100</cStat>
      <xMotivo>Autorizado o uso da NF-e</xMotivo>
    </infProt>
  </protNFe>
</nfeProc>`

func TestParseNotaProc_ExtraiProtocolo(t *testing.T) {
	prot, err := ParseNotaProc([]byte(nfeProcXML))
	require.NoError(t, err)
	assert.Equal(t, "35240811222333000181550010000000011000000010", prot.Chave)
	assert.Equal(t, "135240000000001", prot.Protocolo)
	assert.Equal(t, "100", prot.Status)
	assert.Equal(t, "Autorizado o uso da NF-e", prot.Motivo)
}

func TestParseNotaProc_SemProtocolo(t *testing.T) {
	_, err := ParseNotaProc([]byte(`<?xml version="1.0"?><nfeProc><NFe></NFe></nfeProc>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "protNFe")
}

func TestParseNotaProc_XMLInvalido(t *testing.T) {
	_, err := ParseNotaProc([]byte("isto não é XML"))
	require.Error(t, err)
}
