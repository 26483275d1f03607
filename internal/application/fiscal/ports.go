package fiscal

import (
	"context"

	"github.com/gestorcampo/gestor-api/internal/infrastructure/focusnfe"
)

// Provider porta do provedor de NF-e. O flag homologacao força o ambiente de
// testes independente da configuração global (usado pelo preview).
type Provider interface {
	Emitir(ctx context.Context, homologacao bool, ref string, nota *focusnfe.NotaFiscal) (*focusnfe.Resposta, error)
	Consultar(ctx context.Context, homologacao bool, ref string) (*focusnfe.Resposta, error)
	Cancelar(ctx context.Context, homologacao bool, ref, justificativa string) (*focusnfe.Resposta, error)
	Excluir(ctx context.Context, homologacao bool, ref string) error
	BaixarDocumento(ctx context.Context, homologacao bool, caminho string) ([]byte, string, error)
}
