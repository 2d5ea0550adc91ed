package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa directamente
// (fuera del flujo de registro).
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,max=13"`
	TaxID       string `json:"tax_id" validate:"required,max=11"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name               *string    `json:"name" validate:"omitempty,min=1,max=255"`
	PhoneNumber        *string    `json:"phone_number" validate:"omitempty,max=13"`
	TaxID              *string    `json:"tax_id" validate:"omitempty,max=11"`
	IsTrial            *bool      `json:"is_trial"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	PhoneNumber        string     `json:"phone_number"`
	TaxID              string     `json:"tax_id"`
	CreatedAt          time.Time  `json:"created_at"`
	IsTrial            bool       `json:"is_trial"`
	TrialEndsAt        time.Time  `json:"trial_ends_at"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
