package dto

import "time"

// CreateUserRequest entrada para crear un usuario en una empresa existente
// (password en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	UserName  string `json:"user_name" validate:"omitempty,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// AssignRoleRequest entrada para asignar un rol a un usuario.
type AssignRoleRequest struct {
	RoleID string `json:"role_id" validate:"required,uuid"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
