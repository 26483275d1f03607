// Package focusnfe cliente HTTP do provedor de NF-e (API estilo Focus NFe).
// Autenticação por basic auth com o token no usuário; um par {URL, token} por
// ambiente (produção/homologação).
package focusnfe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gestorcampo/gestor-api/pkg/config"
	"github.com/gestorcampo/gestor-api/pkg/logger"
)

// ErroProvedor falha devolvida pelo provedor, com o status HTTP preservado e a
// mensagem normalizada a partir das formas de erro aninhadas. Raw carrega o
// corpo original para diagnóstico.
type ErroProvedor struct {
	StatusCode int
	Mensagem   string
	Raw        json.RawMessage
}

func (e *ErroProvedor) Error() string {
	return fmt.Sprintf("provedor NF-e (%d): %s", e.StatusCode, e.Mensagem)
}

// Client cliente do provedor.
type Client struct {
	cfg  config.NFEConfig
	http *http.Client
	log  *logger.Logger
}

// NewClient constrói o cliente com as credenciais dos dois ambientes.
func NewClient(cfg config.NFEConfig, log *logger.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

func (c *Client) credentials(homologacao bool) (string, string) {
	if homologacao {
		return c.cfg.Homologacao()
	}
	return c.cfg.Selected()
}

// Emitir envia a NF-e para autorização sob a referência dada.
func (c *Client) Emitir(ctx context.Context, homologacao bool, ref string, nota *NotaFiscal) (*Resposta, error) {
	path := "/v2/nfe?ref=" + url.QueryEscape(ref)
	return c.do(ctx, homologacao, http.MethodPost, path, nota)
}

// Consultar busca o estado atual da NF-e pela referência.
func (c *Client) Consultar(ctx context.Context, homologacao bool, ref string) (*Resposta, error) {
	path := "/v2/nfe/" + url.PathEscape(ref) + "?completa=1"
	return c.do(ctx, homologacao, http.MethodGet, path, nil)
}

// Cancelar solicita o cancelamento com a justificativa dada. A validação do
// tamanho mínimo é do chamador; aqui só se fala com o provedor.
func (c *Client) Cancelar(ctx context.Context, homologacao bool, ref, justificativa string) (*Resposta, error) {
	path := "/v2/nfe/" + url.PathEscape(ref)
	body := map[string]string{"justificativa": justificativa}
	return c.do(ctx, homologacao, http.MethodDelete, path, body)
}

// Excluir remove o rascunho/registro da NF-e no provedor (usado pelo preview
// para não deixar resíduo).
func (c *Client) Excluir(ctx context.Context, homologacao bool, ref string) error {
	_, err := c.do(ctx, homologacao, http.MethodDelete, "/v2/nfe/"+url.PathEscape(ref), nil)
	return err
}

// BaixarDocumento baixa um documento renderizado (DANFE/XML) pelo caminho
// relativo devolvido nas respostas do provedor.
func (c *Client) BaixarDocumento(ctx context.Context, homologacao bool, caminho string) ([]byte, string, error) {
	base, token := c.credentials(homologacao)
	if !strings.HasPrefix(caminho, "/") {
		caminho = "/" + caminho
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+caminho, nil)
	if err != nil {
		return nil, "", fmt.Errorf("montar requisição: %w", err)
	}
	req.SetBasicAuth(token, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("baixar documento: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("ler documento: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, "", &ErroProvedor{StatusCode: resp.StatusCode, Mensagem: "falha ao baixar documento", Raw: data}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) do(ctx context.Context, homologacao bool, method, path string, body any) (*Resposta, error) {
	base, token := c.credentials(homologacao)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("serializar payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("montar requisição: %w", err)
	}
	req.SetBasicAuth(token, "")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chamar provedor: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ler resposta: %w", err)
	}

	var parsed Resposta
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			c.log.Warn().Int("status", resp.StatusCode).Msg("resposta do provedor não é JSON")
			if resp.StatusCode >= 400 {
				return nil, &ErroProvedor{StatusCode: resp.StatusCode, Mensagem: "resposta inválida do provedor", Raw: raw}
			}
			return nil, fmt.Errorf("decodificar resposta: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, &ErroProvedor{
			StatusCode: resp.StatusCode,
			Mensagem:   normalizarErro(&parsed),
			Raw:        raw,
		}
	}
	return &parsed, nil
}

// ErroDeResposta converte uma resposta 2xx cujo corpo carrega um status de
// erro explícito em *ErroProvedor. Na consulta esse status é um estado final
// legítimo; na emissão é rejeição, e quem decide é o chamador.
func ErroDeResposta(r *Resposta) *ErroProvedor {
	raw, _ := json.Marshal(r)
	return &ErroProvedor{
		StatusCode: http.StatusUnprocessableEntity,
		Mensagem:   normalizarErro(r),
		Raw:        raw,
	}
}

// normalizarErro extrai a mensagem mais específica entre as formas de erro do
// provedor: lista de erros aninhada, par {codigo, mensagem} plano ou a
// mensagem SEFAZ.
func normalizarErro(r *Resposta) string {
	if len(r.Erros) > 0 {
		parts := make([]string, 0, len(r.Erros))
		for _, e := range r.Erros {
			if e.Campo != "" {
				parts = append(parts, e.Campo+": "+e.Mensagem)
			} else {
				parts = append(parts, e.Mensagem)
			}
		}
		return strings.Join(parts, "; ")
	}
	if r.Mensagem != "" {
		return r.Mensagem
	}
	if r.MensagemSefaz != "" {
		return r.MensagemSefaz
	}
	return "erro desconhecido do provedor"
}
