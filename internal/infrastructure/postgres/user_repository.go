package postgres

import (
	"context"
	"fmt"

	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db DB
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, company_id, user_name, email, password_hash, created_at, updated_at`

// Create persiste un nuevo usuario. El índice único de email traduce la
// colisión a domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, user_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.CompanyID, user.UserName, user.Email, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	var u entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.CompanyID, &u.UserName, &u.Email, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// GetByEmail obtiene un usuario por email (único a nivel global).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	var u entity.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.CompanyID, &u.UserName, &u.Email, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// List devuelve usuarios con paginación.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, userColumns)
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.UserName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID (los user_roles caen en cascada).
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// AssignRole persiste el vínculo user-role. La clave compuesta traduce la
// asignación duplicada a domain.ErrRoleAlreadyAssigned.
func (r *UserRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, roleID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoleAlreadyAssigned
		}
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// RolesByUser devuelve los roles asignados a un usuario.
func (r *UserRepo) RolesByUser(ctx context.Context, userID string) ([]*entity.Role, error) {
	query := `
		SELECT r.id, r.company_id, r.name
		  FROM roles r
		  JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("roles by user: %w", err)
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
