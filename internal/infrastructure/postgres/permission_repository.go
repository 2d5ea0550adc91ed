package postgres

import (
	"context"
	"fmt"

	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo implementación del puerto PermissionRepository sobre PostgreSQL.
type PermissionRepo struct {
	db DB
}

// NewPermissionRepository construye el adaptador de persistencia para permisos.
func NewPermissionRepository(db DB) *PermissionRepo {
	return &PermissionRepo{db: db}
}

const permissionColumns = `id, module_name, action, category, description`

// Create persiste un nuevo permiso. La pareja (module_name, action) no tiene
// índice único: los duplicados son inocuos para el resolver (semántica de unión).
func (r *PermissionRepo) Create(ctx context.Context, permission *entity.Permission) error {
	query := `
		INSERT INTO permissions (id, module_name, action, category, description)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query,
		permission.ID, permission.ModuleName, permission.Action,
		permission.Category, permission.Description,
	)
	if err != nil {
		return fmt.Errorf("insert permission: %w", err)
	}
	return nil
}

// GetByID obtiene un permiso por ID. Devuelve (nil, nil) si no existe.
func (r *PermissionRepo) GetByID(ctx context.Context, id string) (*entity.Permission, error) {
	query := fmt.Sprintf(`SELECT %s FROM permissions WHERE id = $1`, permissionColumns)
	var p entity.Permission
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ModuleName, &p.Action, &p.Category, &p.Description,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission by id: %w", err)
	}
	return &p, nil
}

// List devuelve permisos con paginación.
func (r *PermissionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Permission, error) {
	query := fmt.Sprintf(`SELECT %s FROM permissions ORDER BY module_name, action LIMIT $1 OFFSET $2`, permissionColumns)
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

// Update actualiza un permiso existente.
func (r *PermissionRepo) Update(ctx context.Context, permission *entity.Permission) error {
	query := `
		UPDATE permissions
		   SET module_name = $2, action = $3, category = $4, description = $5
		 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		permission.ID, permission.ModuleName, permission.Action,
		permission.Category, permission.Description,
	)
	if err != nil {
		return fmt.Errorf("update permission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un permiso por ID (permission_roles caen en cascada).
func (r *PermissionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	return nil
}

// AssignToRole persiste el vínculo role-permission.
func (r *PermissionRepo) AssignToRole(ctx context.Context, roleID, permissionID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO permission_roles (role_id, permission_id) VALUES ($1, $2)`,
		roleID, permissionID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPermissionAlreadyAssigned
		}
		return fmt.Errorf("assign permission: %w", err)
	}
	return nil
}

// IsAssigned informa si el permiso ya está asignado al rol.
func (r *PermissionRepo) IsAssigned(ctx context.Context, roleID, permissionID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM permission_roles WHERE role_id = $1 AND permission_id = $2
		)`
	var assigned bool
	if err := r.db.QueryRow(ctx, query, roleID, permissionID).Scan(&assigned); err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return assigned, nil
}

// ListByRole devuelve los permisos asignados a un rol.
func (r *PermissionRepo) ListByRole(ctx context.Context, roleID string) ([]*entity.Permission, error) {
	query := `
		SELECT p.id, p.module_name, p.action, p.category, p.description
		  FROM permissions p
		  JOIN permission_roles pr ON pr.permission_id = p.id
		 WHERE pr.role_id = $1`
	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("list permissions by role: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

// ListByUser devuelve la unión de permisos alcanzables vía
// user -> roles -> permisos, sin duplicados.
func (r *PermissionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Permission, error) {
	query := `
		SELECT DISTINCT p.id, p.module_name, p.action, p.category, p.description
		  FROM permissions p
		  JOIN permission_roles pr ON pr.permission_id = p.id
		  JOIN user_roles ur ON ur.role_id = pr.role_id
		 WHERE ur.user_id = $1`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list permissions by user: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

type permissionRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPermissions(rows permissionRows) ([]*entity.Permission, error) {
	var list []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.ModuleName, &p.Action, &p.Category, &p.Description); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
