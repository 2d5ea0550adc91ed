package authz

import (
	"context"
	"fmt"
	"strings"

	"github.com/finzeta/identity-api/internal/domain"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// Resolver decide, por petición, si un principal puede invocar la pareja
// (path, method). Los permisos son datos, no código: cambios de roles o
// permisos surten efecto en la siguiente petición sin redeploy.
type Resolver struct {
	userRepo repository.UserRepository
	permRepo repository.PermissionRepository
}

// NewResolver construye el resolver con los puertos de usuarios y permisos.
func NewResolver(userRepo repository.UserRepository, permRepo repository.PermissionRepository) *Resolver {
	return &Resolver{userRepo: userRepo, permRepo: permRepo}
}

// Authorize aplica la regla de acceso:
//
//   - userID vacío (petición anónima): pasa sin chequeo. El tráfico anónimo
//     no se gatea aquí.
//   - userID presente pero sin usuario en la DB: domain.ErrUserNotFound (401).
//   - Concede si algún permiso alcanzable vía user -> roles -> permisos cumple
//     module_name == path (minúsculas) y action == method (mayúsculas).
//     Igualdad exacta: sin wildcards, sin prefijos, un slash final distinto
//     deniega.
//   - Si ninguno coincide: domain.ErrForbidden (403). El caller no puede
//     distinguir "rol ausente" de "permiso ausente".
func (r *Resolver) Authorize(ctx context.Context, userID, path, method string) error {
	if userID == "" {
		return nil
	}

	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("cargar usuario: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	permissions, err := r.permRepo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("cargar permisos: %w", err)
	}

	path = strings.ToLower(path)
	method = strings.ToUpper(method)
	for _, p := range permissions {
		if p.Matches(path, method) {
			return nil
		}
	}
	return domain.ErrForbidden
}
