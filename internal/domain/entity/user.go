package entity

import "time"

// User representa un usuario del sistema (pertenece a exactamente una Company).
// Email es único a nivel global; en el registro el username es el propio email.
type User struct {
	ID           string
	CompanyID    string
	UserName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRole vincula un usuario con un rol (clave compuesta UserID+RoleID).
type UserRole struct {
	UserID string
	RoleID string
}
