package postgres

import (
	"context"
	"fmt"

	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	db DB
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(db DB) *RoleRepo {
	return &RoleRepo{db: db}
}

// Create persiste un nuevo rol. El índice único de nombre (global, no por
// empresa) traduce la colisión a domain.ErrRoleNameAlreadyExists.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO roles (id, company_id, name) VALUES ($1, $2, $3)`,
		role.ID, role.CompanyID, role.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoleNameAlreadyExists
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID. Devuelve (nil, nil) si no existe.
func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	var role entity.Role
	err := r.db.QueryRow(ctx, `SELECT id, company_id, name FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.CompanyID, &role.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by id: %w", err)
	}
	return &role, nil
}

// GetByName obtiene un rol por nombre, sin filtro de empresa.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.db.QueryRow(ctx, `SELECT id, company_id, name FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.CompanyID, &role.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}

// List devuelve roles con paginación.
func (r *RoleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, company_id, name FROM roles ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.CompanyID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// Delete elimina un rol por ID (user_roles y permission_roles caen en cascada).
func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}
