package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartSubscriptionRequest entrada para iniciar una suscripción de pago.
type StartSubscriptionRequest struct {
	CompanyID string          `json:"company_id" validate:"required,uuid"`
	EndDate   time.Time       `json:"end_date" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	IsTrial   bool            `json:"is_trial"`
}

// ExtendSubscriptionRequest entrada para extender una suscripción existente.
// La extensión no se factura aparte: el histórico la registra con precio cero.
type ExtendSubscriptionRequest struct {
	CompanyID  string    `json:"company_id" validate:"required,uuid"`
	NewEndDate time.Time `json:"new_end_date" validate:"required"`
}

// SubscriptionHistoryResponse una fila del ledger de suscripciones.
type SubscriptionHistoryResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Price     decimal.Decimal `json:"price"`
	IsTrial   bool            `json:"is_trial"`
}
