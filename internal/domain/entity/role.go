package entity

import "time"

// Permission par {módulo, ações permitidas} da matriz de capacidades de um cargo.
type Permission struct {
	Module  string   `json:"module"`  // ex.: "vendas", "estoque", "financeiro"
	Actions []string `json:"actions"` // ex.: ["ver", "criar", "editar"]
}

// Role cargo com matriz de permissões por módulo. É a única entidade com
// exclusão física (hard delete), bloqueada enquanto houver usuários vinculados.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Allows informa se o cargo permite a ação no módulo.
func (r *Role) Allows(module, action string) bool {
	for _, p := range r.Permissions {
		if p.Module != module {
			continue
		}
		for _, a := range p.Actions {
			if a == action {
				return true
			}
		}
	}
	return false
}
