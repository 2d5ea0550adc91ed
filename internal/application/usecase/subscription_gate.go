package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// SubscriptionGate decide si la empresa del usuario autenticado tiene la
// suscripción vigente. Una empresa sin fecha de fin nunca se bloquea; con
// fecha de fin pasada o igual al instante actual se bloquea.
type SubscriptionGate struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	now         func() time.Time
}

// NewSubscriptionGate construye el gate.
func NewSubscriptionGate(userRepo repository.UserRepository, companyRepo repository.CompanyRepository) *SubscriptionGate {
	return &SubscriptionGate{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		now:         time.Now,
	}
}

// Check valida la suscripción para el usuario dado. Las peticiones anónimas
// (userID vacío) pasan sin comprobar; el control de identidad es tarea del
// resolver de permisos, no de este gate. Devuelve
// domain.ErrSubscriptionExpired cuando la suscripción venció.
func (g *SubscriptionGate) Check(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	user, err := g.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("consultando usuario: %w", err)
	}
	if user == nil {
		return nil
	}
	company, err := g.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return fmt.Errorf("consultando empresa: %w", err)
	}
	if company == nil {
		return nil
	}
	if company.SubscriptionExpired(g.now()) {
		return domain.ErrSubscriptionExpired
	}
	return nil
}
