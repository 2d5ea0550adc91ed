package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo        repository.CompanyRepository
	trialMonths int
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, trialMonths int) *CompanyUseCase {
	if trialMonths <= 0 {
		trialMonths = 1
	}
	return &CompanyUseCase{repo: repo, trialMonths: trialMonths}
}

// Create crea una nueva empresa en trial, fuera del flujo de registro.
// Devuelve el conflicto del campo concreto si NIF o teléfono ya existen.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, err := uc.repo.GetByTaxID(ctx, in.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrTaxIDAlreadyExists
	}
	existing, err = uc.repo.GetByPhone(ctx, in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:          uuid.New().String(),
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		TaxID:       in.TaxID,
		CreatedAt:   now,
		IsTrial:     true,
		TrialEndsAt: now.AddDate(0, uc.trialMonths, 0),
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID. Devuelve (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza los campos presentes en la petición.
// Devuelve domain.ErrNotFound si la empresa no existe.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.PhoneNumber != nil {
		company.PhoneNumber = *in.PhoneNumber
	}
	if in.TaxID != nil {
		company.TaxID = *in.TaxID
	}
	if in.IsTrial != nil {
		company.IsTrial = *in.IsTrial
	}
	if in.TrialEndsAt != nil {
		company.TrialEndsAt = *in.TrialEndsAt
	}
	if in.SubscriptionEndsAt != nil {
		company.SubscriptionEndsAt = in.SubscriptionEndsAt
	}
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina una empresa. Devuelve domain.ErrNotFound si no existe.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		PhoneNumber:        c.PhoneNumber,
		TaxID:              c.TaxID,
		CreatedAt:          c.CreatedAt,
		IsTrial:            c.IsTrial,
		TrialEndsAt:        c.TrialEndsAt,
		SubscriptionEndsAt: c.SubscriptionEndsAt,
	}
}
