package postgres

import (
	"context"
	"fmt"

	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación del ledger de suscripciones sobre PostgreSQL.
// Solo inserta y lee: el histórico es inmutable.
type SubscriptionRepo struct {
	db DB
}

// NewSubscriptionRepository construye el adaptador del histórico de suscripciones.
func NewSubscriptionRepository(db DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// AppendHistory añade una fila al histórico. Price se persiste como NUMERIC
// (codec shopspring/decimal registrado en el pool).
func (r *SubscriptionRepo) AppendHistory(ctx context.Context, h *entity.SubscriptionHistory) error {
	query := `
		INSERT INTO subscription_history (id, company_id, start_date, end_date, price, is_trial)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		h.ID, h.CompanyID, h.StartDate, h.EndDate, h.Price, h.IsTrial,
	)
	if err != nil {
		return fmt.Errorf("insert subscription history: %w", err)
	}
	return nil
}

// ListByCompany devuelve el histórico de una empresa, del más reciente al más antiguo.
func (r *SubscriptionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.SubscriptionHistory, error) {
	query := `
		SELECT id, company_id, start_date, end_date, price, is_trial
		  FROM subscription_history
		 WHERE company_id = $1
		 ORDER BY start_date DESC`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list subscription history: %w", err)
	}
	defer rows.Close()

	var list []*entity.SubscriptionHistory
	for rows.Next() {
		var h entity.SubscriptionHistory
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.StartDate, &h.EndDate, &h.Price, &h.IsTrial); err != nil {
			return nil, fmt.Errorf("scan subscription history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
