package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// SubscriptionTxRunner ejecuta fn dentro de una transacción con los
// repositorios de empresa y de histórico ligados a esa transacción. Si fn
// devuelve error la transacción se revierte completa: la empresa y su ledger
// nunca quedan desincronizados.
type SubscriptionTxRunner interface {
	RunSubscription(ctx context.Context, fn func(companyRepo repository.CompanyRepository, subsRepo repository.SubscriptionRepository) error) error
}

// SubscriptionUseCase gestiona el ciclo de vida de la suscripción de una
// empresa y su ledger append-only.
type SubscriptionUseCase struct {
	companyRepo repository.CompanyRepository
	subsRepo    repository.SubscriptionRepository
	txRunner    SubscriptionTxRunner
	now         func() time.Time
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(companyRepo repository.CompanyRepository, subsRepo repository.SubscriptionRepository, txRunner SubscriptionTxRunner) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		companyRepo: companyRepo,
		subsRepo:    subsRepo,
		txRunner:    txRunner,
		now:         time.Now,
	}
}

// Start inicia (o reinicia) la suscripción de una empresa: fija la fecha de
// fin y la marca de trial en la empresa y añade una fila al histórico con el
// precio indicado. Ambas escrituras van en la misma transacción.
func (uc *SubscriptionUseCase) Start(ctx context.Context, in dto.StartSubscriptionRequest) (*dto.SubscriptionHistoryResponse, error) {
	var history *entity.SubscriptionHistory
	err := uc.txRunner.RunSubscription(ctx, func(companies repository.CompanyRepository, subs repository.SubscriptionRepository) error {
		company, err := companies.GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}

		endDate := in.EndDate
		company.SubscriptionEndsAt = &endDate
		company.IsTrial = in.IsTrial
		if err := companies.Update(ctx, company); err != nil {
			return err
		}

		history = &entity.SubscriptionHistory{
			ID:        uuid.New().String(),
			CompanyID: company.ID,
			StartDate: uc.now().UTC(),
			EndDate:   endDate,
			Price:     in.Price,
			IsTrial:   in.IsTrial,
		}
		return subs.AppendHistory(ctx, history)
	})
	if err != nil {
		return nil, err
	}
	return entityToHistoryResponse(history), nil
}

// Extend alarga la suscripción vigente hasta la nueva fecha. Solo cambia la
// fecha de fin de la empresa; la marca de trial se conserva tal cual, y la
// fila de histórico se registra con precio cero.
func (uc *SubscriptionUseCase) Extend(ctx context.Context, in dto.ExtendSubscriptionRequest) (*dto.SubscriptionHistoryResponse, error) {
	var history *entity.SubscriptionHistory
	err := uc.txRunner.RunSubscription(ctx, func(companies repository.CompanyRepository, subs repository.SubscriptionRepository) error {
		company, err := companies.GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}

		endDate := in.NewEndDate
		company.SubscriptionEndsAt = &endDate
		if err := companies.Update(ctx, company); err != nil {
			return err
		}

		history = &entity.SubscriptionHistory{
			ID:        uuid.New().String(),
			CompanyID: company.ID,
			StartDate: uc.now().UTC(),
			EndDate:   endDate,
			Price:     decimal.Zero,
			IsTrial:   company.IsTrial,
		}
		return subs.AppendHistory(ctx, history)
	})
	if err != nil {
		return nil, err
	}
	return entityToHistoryResponse(history), nil
}

// History devuelve el ledger completo de una empresa existente.
func (uc *SubscriptionUseCase) History(ctx context.Context, companyID string) ([]dto.SubscriptionHistoryResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.subsRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubscriptionHistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *entityToHistoryResponse(h))
	}
	return items, nil
}

func entityToHistoryResponse(h *entity.SubscriptionHistory) *dto.SubscriptionHistoryResponse {
	if h == nil {
		return nil
	}
	return &dto.SubscriptionHistoryResponse{
		ID:        h.ID,
		CompanyID: h.CompanyID,
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
		Price:     h.Price,
		IsTrial:   h.IsTrial,
	}
}
