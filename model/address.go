package model

import "time"

type Address struct {
	ID           uint64     `db:"id" json:"id"`
	AccountID    string     `db:"account_id" json:"account_id"`
	UserID       string     `db:"user_id" json:"user_id"`
	Street       string     `db:"street" json:"street"`
	Number       string     `db:"number" json:"number"`
	Complement   string     `db:"complement" json:"complement,omitempty"`
	Neighborhood string     `db:"neighborhood" json:"neighborhood"`
	City         string     `db:"city" json:"city"`
	State        string     `db:"state" json:"state"`
	ZipCode      string     `db:"zip_code" json:"zip_code"`
	Country      string     `db:"country" json:"country"`
	IsDefault    bool       `db:"is_default" json:"is_default"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
