package dto

// ErrorResponse corpo uniforme de erro da API.
type ErrorResponse struct {
	Message  string `json:"message"`
	Detalhes any    `json:"detalhes,omitempty"`
}

// MessageResponse corpo simples de confirmação.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusRequest troca de status ativo/inativo.
type StatusRequest struct {
	Status string `json:"status"`
}
