package entity

import "time"

// Category categoria de produto.
type Category struct {
	ID        string
	Name      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
