// Package fiscal implementa o proxy de NF-e: emissão com guarda de
// idempotência, consulta, cancelamento e preview, traduzindo entre as formas
// internas e as do provedor.
package fiscal

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gestorcampo/gestor-api/internal/application/dto"
	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
	"github.com/gestorcampo/gestor-api/internal/infrastructure/focusnfe"
	"github.com/gestorcampo/gestor-api/pkg/config"
	"github.com/gestorcampo/gestor-api/pkg/logger"
)

// ErrNaoConfigurado credenciais do ambiente selecionado ausentes. Todos os
// endpoints fiscais respondem erro de configuração uniforme neste caso.
var ErrNaoConfigurado = errors.New("credenciais do provedor de NF-e não configuradas")

// justificativaMinima tamanho mínimo exigido pela SEFAZ para cancelamento.
const justificativaMinima = 15

// UseCase caso de uso do proxy fiscal.
type UseCase struct {
	cfg      config.NFEConfig
	provider Provider
	sales    repository.SaleRepository
	notifier *events.Notifier
	log      *logger.Logger
}

// NewUseCase constrói o proxy com a configuração explícita dos dois ambientes.
func NewUseCase(cfg config.NFEConfig, provider Provider, sales repository.SaleRepository,
	notifier *events.Notifier, log *logger.Logger) *UseCase {
	return &UseCase{cfg: cfg, provider: provider, sales: sales, notifier: notifier, log: log}
}

func (uc *UseCase) homologacao() bool {
	return uc.cfg.Ambiente != "producao"
}

// Emitir emite a NF-e da venda. Guarda de idempotência: se já existe emissão
// para a referência da venda (em processamento ou autorizada), devolve o
// resultado existente sem falar com o provedor de novo.
func (uc *UseCase) Emitir(ctx context.Context, in *dto.NFeEmitirRequest) (*dto.NFeEmitirResponse, error) {
	if !uc.cfg.Configured() {
		return nil, ErrNaoConfigurado
	}
	if in.Venda == nil || in.Empresa == nil || in.Cliente == nil ||
		len(in.TodosProdutos) == 0 || len(in.TodasUnidades) == 0 {
		return nil, fmt.Errorf("payload de emissão incompleto: %w", domain.ErrInvalidInput)
	}
	if len(in.Venda.Items) == 0 {
		return nil, fmt.Errorf("venda sem itens: %w", domain.ErrInvalidInput)
	}

	ref := in.Venda.ID
	sale, err := uc.sales.GetByID(in.Venda.ID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venda %s: %w", in.Venda.ID, domain.ErrNotFound)
	}
	if sale.NFe.Ref != "" &&
		(sale.NFe.Status == entity.NFeStatusProcessando || sale.NFe.Status == entity.NFeStatusAutorizado) {
		return &dto.NFeEmitirResponse{
			Message:           "NF-e já emitida para esta venda",
			Ref:               sale.NFe.Ref,
			Status:            sale.NFe.Status,
			CaminhoDANFE:      sale.NFe.DANFEURL,
			CaminhoXMLNotaFis: sale.NFe.XMLURL,
		}, nil
	}

	nota, err := montarNota(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidInput)
	}

	resp, err := uc.provider.Emitir(ctx, uc.homologacao(), ref, nota)
	if err != nil {
		uc.marcarErro(ref, sale.ID, err)
		return nil, err
	}
	// O provedor responde 2xx com o erro dentro do corpo em algumas rejeições;
	// na emissão isso é falha, não sucesso.
	if resp.Rejeitada() {
		perr := focusnfe.ErroDeResposta(resp)
		uc.marcarErro(ref, sale.ID, perr)
		return nil, perr
	}

	status := resp.Status
	if status == "" {
		status = entity.NFeStatusProcessando
	}
	uc.atualizarSubRegistro(sale.ID, entity.SaleNFe{
		Status:    status,
		Ref:       ref,
		Chave:     resp.ChaveNFe,
		Protocolo: resp.NumeroProtocolo,
		DANFEURL:  resp.CaminhoDANFE,
		XMLURL:    resp.CaminhoXML,
		Mensagem:  resp.MensagemSefaz,
	})

	return &dto.NFeEmitirResponse{
		Message:           "NF-e enviada para autorização",
		Ref:               ref,
		Status:            status,
		CaminhoDANFE:      resp.CaminhoDANFE,
		CaminhoXMLNotaFis: resp.CaminhoXML,
		Autorizacao:       resp,
	}, nil
}

// Consultar consulta o estado da NF-e no provedor e normaliza os nomes de
// campo. Se a referência corresponder a uma venda, o sub-registro fiscal é
// atualizado de caminho.
func (uc *UseCase) Consultar(ctx context.Context, ref string) (*dto.NFeConsultarResponse, error) {
	if !uc.cfg.Configured() {
		return nil, ErrNaoConfigurado
	}
	if ref == "" {
		return nil, fmt.Errorf("ref obrigatória: %w", domain.ErrInvalidInput)
	}

	resp, err := uc.provider.Consultar(ctx, uc.homologacao(), ref)
	if err != nil {
		return nil, err
	}

	if sale, err := uc.sales.GetByNFeRef(ref); err == nil && sale != nil {
		uc.atualizarSubRegistro(sale.ID, entity.SaleNFe{
			Status:    resp.Status,
			Ref:       ref,
			Chave:     resp.ChaveNFe,
			Protocolo: resp.NumeroProtocolo,
			DANFEURL:  resp.CaminhoDANFE,
			XMLURL:    resp.CaminhoXML,
			Mensagem:  resp.MensagemSefaz,
		})
	}

	return &dto.NFeConsultarResponse{
		Ref:           ref,
		Status:        resp.Status,
		URLDANFE:      resp.CaminhoDANFE,
		URLXML:        resp.CaminhoXML,
		Chave:         resp.ChaveNFe,
		Protocolo:     resp.NumeroProtocolo,
		MensagemSefaz: resp.MensagemSefaz,
		Erros:         errosOuNil(resp),
	}, nil
}

// Cancelar cancela a NF-e. A justificativa de no mínimo 15 caracteres é
// validada antes de qualquer chamada ao provedor.
func (uc *UseCase) Cancelar(ctx context.Context, in dto.NFeCancelarRequest) (*dto.NFeCancelarResponse, error) {
	if in.Ref == "" {
		return nil, fmt.Errorf("ref obrigatória: %w", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Justificativa) < justificativaMinima {
		return nil, fmt.Errorf("justificativa deve ter ao menos %d caracteres: %w",
			justificativaMinima, domain.ErrInvalidInput)
	}
	if !uc.cfg.Configured() {
		return nil, ErrNaoConfigurado
	}

	resp, err := uc.provider.Cancelar(ctx, uc.homologacao(), in.Ref, in.Justificativa)
	if err != nil {
		return nil, err
	}

	if sale, err := uc.sales.GetByNFeRef(in.Ref); err == nil && sale != nil {
		nfe := sale.NFe
		nfe.Status = entity.NFeStatusCancelado
		nfe.Mensagem = resp.MensagemSefaz
		uc.atualizarSubRegistro(sale.ID, nfe)
	}

	return &dto.NFeCancelarResponse{
		Ref:           in.Ref,
		Status:        resp.Status,
		MensagemSefaz: resp.MensagemSefaz,
		Erros:         errosOuNil(resp),
	}, nil
}

// Preview emite contra homologação sob uma referência temporária, baixa o
// DANFE renderizado, apaga o registro no provedor e devolve só os bytes.
// Nenhum estado é persistido aqui.
func (uc *UseCase) Preview(ctx context.Context, in *dto.NFeEmitirRequest) ([]byte, error) {
	if u, token := uc.cfg.Homologacao(); u == "" || token == "" {
		return nil, ErrNaoConfigurado
	}
	if in.Venda == nil || in.Empresa == nil || in.Cliente == nil ||
		len(in.TodosProdutos) == 0 || len(in.TodasUnidades) == 0 {
		return nil, fmt.Errorf("payload de preview incompleto: %w", domain.ErrInvalidInput)
	}

	nota, err := montarNota(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidInput)
	}

	ref := "preview-" + uuid.New().String()
	resp, err := uc.provider.Emitir(ctx, true, ref, nota)
	if err != nil {
		return nil, err
	}
	// O registro temporário é removido mesmo se o download falhar.
	defer func() {
		if err := uc.provider.Excluir(context.WithoutCancel(ctx), true, ref); err != nil {
			uc.log.Warn().Str("ref", ref).Err(err).Msg("falha ao excluir preview no provedor")
		}
	}()
	if resp.Rejeitada() {
		return nil, focusnfe.ErroDeResposta(resp)
	}

	caminho := resp.CaminhoDANFE
	if caminho == "" {
		consulta, err := uc.provider.Consultar(ctx, true, ref)
		if err != nil {
			return nil, err
		}
		caminho = consulta.CaminhoDANFE
	}
	if caminho == "" {
		return nil, fmt.Errorf("provedor não devolveu o DANFE do preview")
	}

	data, _, err := uc.provider.BaixarDocumento(ctx, true, caminho)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// BaixarDANFE baixa o DANFE renderizado de uma NF-e já emitida, para o
// streaming inline de /pdf/:ref.
func (uc *UseCase) BaixarDANFE(ctx context.Context, ref string) ([]byte, string, error) {
	if !uc.cfg.Configured() {
		return nil, "", ErrNaoConfigurado
	}
	if ref == "" {
		return nil, "", fmt.Errorf("ref obrigatória: %w", domain.ErrInvalidInput)
	}

	resp, err := uc.provider.Consultar(ctx, uc.homologacao(), ref)
	if err != nil {
		return nil, "", err
	}
	if resp.CaminhoDANFE == "" {
		return nil, "", fmt.Errorf("NF-e %s sem DANFE disponível: %w", ref, domain.ErrNotFound)
	}
	return uc.provider.BaixarDocumento(ctx, uc.homologacao(), resp.CaminhoDANFE)
}

func (uc *UseCase) atualizarSubRegistro(saleID string, nfe entity.SaleNFe) {
	now := time.Now()
	nfe.UpdatedAt = &now
	if err := uc.sales.UpdateNFe(saleID, nfe); err != nil {
		uc.log.Error().Str("venda", saleID).Err(err).Msg("falha ao atualizar sub-registro fiscal")
		return
	}
	uc.notifier.Publish(events.Change{Entity: "sales", Action: "updated", ID: saleID})
}

// marcarErro grava o status de erro na venda. Erro explícito do provedor vira
// erro_autorizacao; falha de comunicação vira "erro", recuperável por
// reconsulta ou reemissão.
func (uc *UseCase) marcarErro(ref, saleID string, err error) {
	status := entity.NFeStatusErro
	var pe *focusnfe.ErroProvedor
	if errors.As(err, &pe) {
		status = entity.NFeStatusRejeitado
	}
	uc.atualizarSubRegistro(saleID, entity.SaleNFe{
		Status:   status,
		Ref:      ref,
		Mensagem: err.Error(),
	})
}

func errosOuNil(r *focusnfe.Resposta) any {
	if len(r.Erros) == 0 {
		return nil
	}
	return r.Erros
}
