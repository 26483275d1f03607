package focusnfe

import (
	"fmt"

	"github.com/beevik/etree"
)

// ProtocoloAutorizacao dados extraídos do XML nfeProc de uma NF-e autorizada.
type ProtocoloAutorizacao struct {
	Chave      string // chave de acesso (44 dígitos)
	Protocolo  string // número do protocolo de autorização
	Status     string // cStat da SEFAZ ("100" = autorizado)
	Motivo     string // xMotivo
	DataRecbto string // dhRecbto
}

// ParseNotaProc lê o XML nfeProc devolvido pelo provedor e extrai o protocolo
// de autorização. O XML da NF-e usa o namespace padrão sem prefixo, então os
// caminhos são pelas tags diretas.
func ParseNotaProc(data []byte) (*ProtocoloAutorizacao, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("ler XML da NF-e: %w", err)
	}

	infProt := doc.FindElement("//protNFe/infProt")
	if infProt == nil {
		return nil, fmt.Errorf("XML sem protocolo de autorização (protNFe/infProt)")
	}

	get := func(tag string) string {
		if el := infProt.FindElement(tag); el != nil {
			return el.Text()
		}
		return ""
	}

	prot := &ProtocoloAutorizacao{
		Chave:      get("chNFe"),
		Protocolo:  get("nProt"),
		Status:     get("cStat"),
		Motivo:     get("xMotivo"),
		DataRecbto: get("dhRecbto"),
	}
	if prot.Chave == "" {
		return nil, fmt.Errorf("XML sem chave de acesso (chNFe)")
	}
	return prot, nil
}
