package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionHistory es un registro inmutable (append-only) de un periodo de
// suscripción: se añade una fila cada vez que una suscripción inicia o se extiende.
type SubscriptionHistory struct {
	ID        string
	CompanyID string
	StartDate time.Time
	EndDate   time.Time
	Price     decimal.Decimal // las extensiones se registran con precio cero
	IsTrial   bool
}
