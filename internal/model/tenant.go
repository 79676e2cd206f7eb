package model

import "time"

type Tenant struct {
	Base
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
