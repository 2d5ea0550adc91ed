package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// PermissionUseCase gestiona el catálogo de permisos y su asignación a roles.
type PermissionUseCase struct {
	repo     repository.PermissionRepository
	roleRepo repository.RoleRepository
}

// NewPermissionUseCase construye el caso de uso.
func NewPermissionUseCase(repo repository.PermissionRepository, roleRepo repository.RoleRepository) *PermissionUseCase {
	return &PermissionUseCase{repo: repo, roleRepo: roleRepo}
}

// Create registra un permiso. No se impone unicidad sobre (module_name, action):
// el catálogo admite duplicados y el resolver los trata igual.
func (uc *PermissionUseCase) Create(ctx context.Context, in dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	perm := &entity.Permission{
		ID:          uuid.New().String(),
		ModuleName:  in.ModuleName,
		Action:      in.Action,
		Category:    in.Category,
		Description: in.Description,
	}
	if err := uc.repo.Create(ctx, perm); err != nil {
		return nil, err
	}
	return entityToPermissionResponse(perm), nil
}

// GetByID obtiene un permiso por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *PermissionUseCase) GetByID(ctx context.Context, id string) (*dto.PermissionResponse, error) {
	perm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrNotFound
	}
	return entityToPermissionResponse(perm), nil
}

// List lista permisos con paginación.
func (uc *PermissionUseCase) List(ctx context.Context, limit, offset int) (*dto.PermissionListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermissionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *entityToPermissionResponse(p))
	}
	return &dto.PermissionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update reemplaza los campos de un permiso existente.
func (uc *PermissionUseCase) Update(ctx context.Context, id string, in dto.UpdatePermissionRequest) (*dto.PermissionResponse, error) {
	perm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrNotFound
	}
	perm.ModuleName = in.ModuleName
	perm.Action = in.Action
	perm.Category = in.Category
	perm.Description = in.Description
	if err := uc.repo.Update(ctx, perm); err != nil {
		return nil, err
	}
	return entityToPermissionResponse(perm), nil
}

// Delete elimina un permiso y, por cascada, sus asignaciones.
func (uc *PermissionUseCase) Delete(ctx context.Context, id string) error {
	perm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if perm == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// AssignToRole vincula un permiso a un rol. Ambos deben existir; un vínculo
// duplicado devuelve domain.ErrPermissionAlreadyAssigned.
func (uc *PermissionUseCase) AssignToRole(ctx context.Context, in dto.AssignPermissionRequest) error {
	role, err := uc.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	perm, err := uc.repo.GetByID(ctx, in.PermissionID)
	if err != nil {
		return err
	}
	if perm == nil {
		return domain.ErrNotFound
	}
	assigned, err := uc.repo.IsAssigned(ctx, in.RoleID, in.PermissionID)
	if err != nil {
		return err
	}
	if assigned {
		return domain.ErrPermissionAlreadyAssigned
	}
	return uc.repo.AssignToRole(ctx, in.RoleID, in.PermissionID)
}

// ListByRole devuelve los permisos asignados a un rol existente.
func (uc *PermissionUseCase) ListByRole(ctx context.Context, roleID string) ([]dto.PermissionResponse, error) {
	role, err := uc.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermissionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *entityToPermissionResponse(p))
	}
	return items, nil
}

func entityToPermissionResponse(p *entity.Permission) *dto.PermissionResponse {
	if p == nil {
		return nil
	}
	return &dto.PermissionResponse{
		ID:          p.ID,
		ModuleName:  p.ModuleName,
		Action:      p.Action,
		Category:    p.Category,
		Description: p.Description,
	}
}
