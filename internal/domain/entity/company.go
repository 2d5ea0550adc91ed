package entity

import "time"

// Company representa una organización/tenant del sistema.
// Teléfono y NIF (identificador fiscal) son únicos a nivel global:
// las precondiciones del registro se apoyan en esos índices.
type Company struct {
	ID                 string
	Name               string
	PhoneNumber        string
	TaxID              string // identificador fiscal de la empresa
	CreatedAt          time.Time
	IsTrial            bool
	TrialEndsAt        time.Time
	SubscriptionEndsAt *time.Time // nil = sin suscripción de pago (p.ej. trial activo)
}

// SubscriptionExpired informa si la empresa tiene una fecha de fin de
// suscripción fijada y ya vencida en el instante now. Un valor nil nunca
// bloquea: solo una fecha explícita y pasada rechaza peticiones.
func (c *Company) SubscriptionExpired(now time.Time) bool {
	return c.SubscriptionEndsAt != nil && !c.SubscriptionEndsAt.After(now)
}
