package repository

import (
	"context"

	"github.com/finzeta/identity-api/internal/domain/entity"
)

// SubscriptionRepository define el puerto para el ledger de suscripciones.
// Solo hay append y lectura: las filas de histórico son inmutables.
type SubscriptionRepository interface {
	AppendHistory(ctx context.Context, history *entity.SubscriptionHistory) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.SubscriptionHistory, error)
}
