package fiscal

import (
	"context"
	"time"

	"github.com/gestorcampo/gestor-api/internal/application/events"
	"github.com/gestorcampo/gestor-api/internal/domain/entity"
	"github.com/gestorcampo/gestor-api/internal/domain/repository"
	"github.com/gestorcampo/gestor-api/internal/infrastructure/focusnfe"
	"github.com/gestorcampo/gestor-api/pkg/logger"
)

// Poller reconsulta periodicamente as NF-e em processando_autorizacao e grava
// o desfecho no sub-registro da venda. Melhor esforço: falha em um item é
// logada e o lote segue para o próximo, nunca aborta.
type Poller struct {
	uc       *UseCase
	sales    repository.SaleRepository
	notifier *events.Notifier
	log      *logger.Logger
	interval time.Duration
}

// NewPoller constrói o poller. interval <= 0 desativa o Run.
func NewPoller(uc *UseCase, sales repository.SaleRepository, notifier *events.Notifier,
	log *logger.Logger, interval time.Duration) *Poller {
	return &Poller{uc: uc, sales: sales, notifier: notifier, log: log, interval: interval}
}

// Run roda o laço de polling até o contexto ser cancelado.
func (p *Poller) Run(ctx context.Context) {
	if p.interval <= 0 {
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick processa um lote de vendas pendentes.
func (p *Poller) Tick(ctx context.Context) {
	pendentes, err := p.sales.ListByNFeStatus(entity.NFeStatusProcessando, 50)
	if err != nil {
		p.log.Error().Err(err).Msg("poller: falha ao listar NF-e pendentes")
		return
	}
	for _, sale := range pendentes {
		if ctx.Err() != nil {
			return
		}
		if err := p.atualizar(ctx, sale); err != nil {
			p.log.Warn().Str("venda", sale.ID).Str("ref", sale.NFe.Ref).Err(err).
				Msg("poller: falha ao consultar NF-e, seguindo para a próxima")
		}
	}
}

func (p *Poller) atualizar(ctx context.Context, sale *entity.Sale) error {
	resp, err := p.uc.provider.Consultar(ctx, p.uc.homologacao(), sale.NFe.Ref)
	if err != nil {
		return err
	}
	if resp.Pendente() {
		return nil
	}

	nfe := entity.SaleNFe{
		Status:    resp.Status,
		Ref:       sale.NFe.Ref,
		Chave:     resp.ChaveNFe,
		Protocolo: resp.NumeroProtocolo,
		DANFEURL:  resp.CaminhoDANFE,
		XMLURL:    resp.CaminhoXML,
		Mensagem:  resp.MensagemSefaz,
	}

	// Consulta sem chave/protocolo: cai no XML autorizado, que sempre traz os
	// dois no protNFe.
	if resp.Status == entity.NFeStatusAutorizado && (nfe.Chave == "" || nfe.Protocolo == "") && resp.CaminhoXML != "" {
		if data, _, err := p.uc.provider.BaixarDocumento(ctx, p.uc.homologacao(), resp.CaminhoXML); err == nil {
			if prot, err := focusnfe.ParseNotaProc(data); err == nil {
				nfe.Chave = prot.Chave
				nfe.Protocolo = prot.Protocolo
				if nfe.Mensagem == "" {
					nfe.Mensagem = prot.Motivo
				}
			}
		}
	}

	now := time.Now()
	nfe.UpdatedAt = &now
	if err := p.sales.UpdateNFe(sale.ID, nfe); err != nil {
		return err
	}
	p.notifier.Publish(events.Change{Entity: "sales", Action: "updated", ID: sale.ID})
	p.log.Info().Str("venda", sale.ID).Str("status", nfe.Status).Msg("poller: NF-e atualizada")
	return nil
}
