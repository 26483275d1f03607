package entity

// Entidades do cadastro nunca são apagadas fisicamente (exceto Role):
// a "remoção" é a troca de status para inativo.
const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)
