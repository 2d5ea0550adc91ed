package repository

import (
	"context"

	"github.com/finzeta/identity-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role (DIP).
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	// GetByName busca por nombre sin filtrar por empresa: la unicidad del
	// nombre de rol es global en el sistema observado.
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Role, error)
	Delete(ctx context.Context, id string) error
}
