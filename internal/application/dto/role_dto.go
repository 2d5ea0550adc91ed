package dto

// CreateRoleRequest entrada para crear un rol.
type CreateRoleRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=255"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}

// RoleListResponse lista paginada de roles.
type RoleListResponse struct {
	Items []RoleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
