package entity

import "time"

// User usuário da aplicação. Name é denormalizado para exibição; as permissões
// vêm do cargo (RoleID).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	RoleID       string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
