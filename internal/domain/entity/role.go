package entity

// Role representa un rol dentro de una empresa.
//
// Nota: la unicidad del nombre es global (no por empresa), replicando el
// comportamiento observado del sistema original. Probable bug multi-tenant;
// pendiente de decisión de producto antes de cambiar el alcance.
type Role struct {
	ID        string
	CompanyID string
	Name      string
}

// PermissionRole vincula un rol con un permiso (clave compuesta RoleID+PermissionID).
type PermissionRole struct {
	RoleID       string
	PermissionID string
}
