package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/entity"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
	roleRepo    repository.RoleRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, companyRepo repository.CompanyRepository, roleRepo repository.RoleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo, roleRepo: roleRepo}
}

// Create crea un usuario en una empresa existente: hashea el password con
// bcrypt y persiste. Devuelve domain.ErrNotFound si la empresa no existe y
// domain.ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	userName := in.UserName
	if userName == "" {
		userName = in.Email
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		UserName:     userName,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un usuario. Devuelve domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// AssignRole asigna el rol indicado al usuario. Usuario o rol inexistentes
// devuelven not-found; la asignación duplicada devuelve
// domain.ErrRoleAlreadyAssigned.
func (uc *UserUseCase) AssignRole(ctx context.Context, userID, roleID string) error {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	role, err := uc.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	return uc.repo.AssignRole(ctx, userID, roleID)
}

// RolesByUser devuelve los roles asignados a un usuario.
func (uc *UserUseCase) RolesByUser(ctx context.Context, userID string) ([]dto.RoleResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	roles, err := uc.repo.RolesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		items = append(items, dto.RoleResponse{ID: r.ID, CompanyID: r.CompanyID, Name: r.Name})
	}
	return items, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		UserName:  u.UserName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
