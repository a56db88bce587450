package model

import "github.com/stocktech/marketplace/constant"

// Identity is the caller resolved at the transport boundary from the session
// token and the account service. Optional fields from the external payload
// are validated once here and never re-checked downstream.
type Identity struct {
	UserID    string        `json:"user_id"`
	AccountID string        `json:"account_id"`
	OwnerCPF  string        `json:"owner_cpf"`
	Name      string        `json:"name"`
	Role      constant.Role `json:"role"`
}

// ExternalUser is the raw user payload returned by the account service.
type ExternalUser struct {
	ID        string  `json:"id"`
	CPF       string  `json:"cpf"`
	FullName  *string `json:"full_name"`
	AccountID *string `json:"account_id"`
	Role      *string `json:"role"`
}

// ExternalAccount is the raw account payload returned by the account service.
type ExternalAccount struct {
	ID       string  `json:"id"`
	OwnerCPF *string `json:"owner_cpf"`
	Status   *string `json:"status"`
}
