package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// RoleUseCase aplica reglas de negocio para roles.
type RoleUseCase struct {
	repo        repository.RoleRepository
	companyRepo repository.CompanyRepository
}

// NewRoleUseCase construye el caso de uso con los puertos de persistencia.
func NewRoleUseCase(repo repository.RoleRepository, companyRepo repository.CompanyRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea un rol para una empresa. La unicidad del nombre se comprueba
// sin filtro de empresa (alcance global, como en el sistema observado);
// devuelve domain.ErrRoleNameAlreadyExists en colisión.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRoleNameAlreadyExists
	}

	role := &entity.Role{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		Name:      in.Name,
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return entityToRoleResponse(role), nil
}

// GetByID obtiene un rol por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return entityToRoleResponse(role), nil
}

// List lista roles con paginación.
func (uc *RoleUseCase) List(ctx context.Context, limit, offset int) (*dto.RoleListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *entityToRoleResponse(r))
	}
	return &dto.RoleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un rol. Devuelve domain.ErrNotFound si no existe.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func entityToRoleResponse(r *entity.Role) *dto.RoleResponse {
	if r == nil {
		return nil
	}
	return &dto.RoleResponse{ID: r.ID, CompanyID: r.CompanyID, Name: r.Name}
}
