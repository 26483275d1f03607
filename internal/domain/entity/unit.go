package entity

import "time"

// Unit unidade de medida (ex.: KG, UN, CX). Sigla é a abreviação usada na NF-e.
type Unit struct {
	ID        string
	Name      string
	Sigla     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
