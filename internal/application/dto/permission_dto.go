package dto

// CreatePermissionRequest entrada para crear un permiso. ModuleName es la ruta
// y Action el método HTTP que el resolver comparará con cada petición.
type CreatePermissionRequest struct {
	ModuleName  string `json:"module_name" validate:"required,max=255"`
	Action      string `json:"action" validate:"required,max=50"`
	Category    string `json:"category" validate:"omitempty,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// UpdatePermissionRequest entrada para actualizar un permiso.
type UpdatePermissionRequest struct {
	ModuleName  string `json:"module_name" validate:"required,max=255"`
	Action      string `json:"action" validate:"required,max=50"`
	Category    string `json:"category" validate:"omitempty,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// AssignPermissionRequest entrada para asignar un permiso a un rol.
type AssignPermissionRequest struct {
	RoleID       string `json:"role_id" validate:"required,uuid"`
	PermissionID string `json:"permission_id" validate:"required,uuid"`
}

// PermissionResponse salida de un permiso.
type PermissionResponse struct {
	ID          string `json:"id"`
	ModuleName  string `json:"module_name"`
	Action      string `json:"action"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// PermissionListResponse lista de permisos.
type PermissionListResponse struct {
	Items []PermissionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
