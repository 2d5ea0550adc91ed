package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
)

// authorizer es el contrato mínimo que necesita el middleware para resolver
// permisos. Lo implementa *authz.Resolver; la interfaz evita acoplar el
// paquete http al de aplicación.
type authorizer interface {
	Authorize(ctx context.Context, userID, path, method string) error
}

// PermissionMiddleware verifica que el usuario del token tenga un permiso
// cuyo module_name/action coincida exactamente con la ruta y el método de la
// petición. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - petición anónima (sin user_id) → pasa sin verificar.
//   - user_id presente pero usuario inexistente → 401.
//   - ningún permiso coincide → 403.
//   - fallo de infraestructura al consultar → 503.
func PermissionMiddleware(resolver authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := resolver.Authorize(c.Context(), GetUserID(c), c.Path(), c.Method())
		if err == nil {
			return c.Next()
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "el usuario del token no existe",
			})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene permiso para esta operación",
			})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "PERMISSION_CHECK_FAILED",
			Message: "no se pudo verificar el permiso, intente más tarde",
		})
	}
}
