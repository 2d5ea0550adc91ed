package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/domain"
)

// subscriptionChecker es el contrato mínimo del gate de suscripción.
// Lo implementa *usecase.SubscriptionGate.
type subscriptionChecker interface {
	Check(ctx context.Context, userID string) error
}

// SubscriptionMiddleware bloquea peticiones de empresas con la suscripción
// vencida. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - petición anónima o empresa sin fecha de fin → pasa.
//   - fecha de fin pasada o igual a ahora → 403.
//   - fallo de infraestructura al consultar → 503.
func SubscriptionMiddleware(gate subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := gate.Check(c.Context(), GetUserID(c))
		if err == nil {
			return c.Next()
		}
		if errors.Is(err, domain.ErrSubscriptionExpired) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_EXPIRED",
				Message: "la suscripción de la empresa ha vencido",
			})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "SUBSCRIPTION_CHECK_FAILED",
			Message: "no se pudo verificar la suscripción, intente más tarde",
		})
	}
}
