package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/pkg/jwt"
)

// Locals keys para la identidad extraída del token en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalEmail     = "email"
)

// AuthMiddleware valida el Bearer Token JWT si está presente y deja la
// identidad en c.Locals. Una petición SIN header Authorization continúa como
// anónima (user_id vacío): son los middlewares posteriores quienes deciden si
// el recurso exige identidad. Un token presente pero inválido sí responde 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Petición anónima: sigue sin identidad.
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, companyID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (vacío si la petición es anónima).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto.
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmail devuelve el email del contexto.
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
