package repository

import (
	"context"

	"github.com/finzeta/identity-api/internal/domain/entity"
)

// PermissionRepository define el puerto de persistencia para Permission y su
// tabla de unión con roles (DIP).
type PermissionRepository interface {
	Create(ctx context.Context, permission *entity.Permission) error
	GetByID(ctx context.Context, id string) (*entity.Permission, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Permission, error)
	Update(ctx context.Context, permission *entity.Permission) error
	Delete(ctx context.Context, id string) error
	// AssignToRole persiste el vínculo role-permission (clave compuesta).
	AssignToRole(ctx context.Context, roleID, permissionID string) error
	// IsAssigned informa si el permiso ya está asignado al rol.
	IsAssigned(ctx context.Context, roleID, permissionID string) (bool, error)
	// ListByRole devuelve los permisos asignados a un rol.
	ListByRole(ctx context.Context, roleID string) ([]*entity.Permission, error)
	// ListByUser devuelve la unión de permisos alcanzables vía
	// user -> roles asignados -> permisos de cada rol.
	ListByUser(ctx context.Context, userID string) ([]*entity.Permission, error)
}
