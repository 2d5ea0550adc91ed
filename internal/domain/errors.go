package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los conflictos de unicidad
// son distintos por campo para que el boundary pueda decir qué dato colisionó.
var (
	ErrNotFound                  = errors.New("recurso no encontrado")
	ErrUserNotFound              = errors.New("usuario no encontrado")
	ErrTaxIDAlreadyExists        = errors.New("ya existe una empresa con ese NIF")
	ErrPhoneAlreadyExists        = errors.New("ya existe una empresa con ese teléfono")
	ErrEmailAlreadyExists        = errors.New("el email ya está registrado")
	ErrRoleNameAlreadyExists     = errors.New("ya existe un rol con ese nombre")
	ErrRoleAlreadyAssigned       = errors.New("el rol ya está asignado al usuario")
	ErrPermissionAlreadyAssigned = errors.New("el permiso ya está asignado al rol")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrUnauthorized              = errors.New("no autorizado")
	ErrForbidden                 = errors.New("acceso denegado")
	ErrSubscriptionExpired       = errors.New("la suscripción de la empresa ha vencido")
	ErrConflict                  = errors.New("conflicto con el estado actual")
)
