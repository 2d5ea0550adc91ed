package repository

import (
	"context"

	"github.com/finzeta/identity-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	// AssignRole persiste el vínculo user-role (clave compuesta).
	AssignRole(ctx context.Context, userID, roleID string) error
	// RolesByUser devuelve los roles asignados a un usuario.
	RolesByUser(ctx context.Context, userID string) ([]*entity.Role, error)
}
